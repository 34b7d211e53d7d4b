package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebridge/patient-platform/internal/core/ports"
)

// PatientHandler exposes the records service's HTTP surface. Authorization
// happens upstream at the gateway; this service trusts the gateway's matrix.
type PatientHandler struct {
	patients ports.PatientService
}

func NewPatientHandler(patients ports.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// List returns all non-deleted patients.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Success      200  {array}  patientResponse
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.patients.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single patient by id.
//
// @Summary      Get patient by id
// @Tags         patients
// @Produce      json
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  patientResponse
// @Failure      404  {object}  map[string]string
// @Router       /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	patient, err := h.patients.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPatientResponse(patient))
}

// Create registers a new patient record.
//
// @Summary      Create patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        body  body      patientRequest  true  "Patient details"
// @Success      201   {object}  patientResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	req, err := bindPatientRequest(c)
	if err != nil {
		return err
	}

	created, err := h.patients.CreatePatient(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPatientResponse(created))
}

// Update replaces a patient's mutable fields.
//
// @Summary      Update patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Patient id"
// @Param        body  body      patientRequest  true  "Patient details"
// @Success      200   {object}  patientResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	req, err := bindPatientRequest(c)
	if err != nil {
		return err
	}

	updated, err := h.patients.UpdatePatient(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPatientResponse(updated))
}

// Delete soft-deletes a patient record.
//
// @Summary      Delete patient
// @Tags         patients
// @Param        id  path  string  true  "Patient id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	if err := h.patients.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Restore undoes a soft delete.
//
// @Summary      Restore patient
// @Tags         patients
// @Produce      json
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  patientResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /patients/{id}/restore [put]
func (h *PatientHandler) Restore(c echo.Context) error {
	restored, err := h.patients.RestorePatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPatientResponse(restored))
}

func bindPatientRequest(c echo.Context) (ports.PatientInput, error) {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return ports.PatientInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.PatientInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.PatientInput{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		BloodGroup:  req.BloodGroup,
	}, nil
}
