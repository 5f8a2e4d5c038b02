package controller

import (
	"fmt"
	"net/http"
	"strconv"

	customerrors "thyrocheck/internal/customErrors"
	"thyrocheck/internal/dto"
	"thyrocheck/internal/middleware"
	"thyrocheck/internal/thyroid/service"
)

const thyroCheckPath = "/thyrocheck"

type ThyroidController struct {
	thyroidService service.ThyroidService
}

func NewThyroidController(thyroidService service.ThyroidService) *ThyroidController {
	return &ThyroidController{thyroidService: thyroidService}
}

func (c *ThyroidController) ThyroCheckPage(w http.ResponseWriter, r *http.Request) error {
	predictions, err := c.thyroidService.Predictions(r.Context())
	if err != nil {
		return err
	}
	return middleware.Render(w, r, "thyroid_predictions", predictions)
}

func (c *ThyroidController) ThyroCheck(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return middleware.RedirectWithError(checkError(customerrors.ErrBadRequest), thyroCheckPath)
	}

	userID, err := middleware.CurrentUserID(r.Context())
	if err != nil {
		return middleware.RedirectWithWarning(customerrors.ErrLoginRequired, "/login")
	}

	req, err := dto.NewThyroCheckRequest(r.PostForm)
	if err != nil {
		return middleware.RedirectWithError(checkError(err), thyroCheckPath)
	}

	res, err := c.thyroidService.Check(r.Context(), userID, req)
	if err != nil {
		return middleware.RedirectWithError(checkError(err), thyroCheckPath)
	}

	return middleware.FlashRedirect(w, r, dto.FlashSuccess,
		"Prediction saved successfully! Result: "+res.Result, thyroCheckPath)
}

func (c *ThyroidController) Predictions(w http.ResponseWriter, r *http.Request) error {
	predictions, err := c.thyroidService.PredictionsWithPatients(r.Context())
	if err != nil {
		return err
	}
	return middleware.Render(w, r, "thyroid_predictions", predictions)
}

func (c *ThyroidController) Report(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return customerrors.ErrPredictionNotFound
	}

	pdf, err := c.thyroidService.Report(r.Context(), id)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"thyroid-prediction-%d.pdf\"", id))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(pdf)
	return err
}

// checkError prefixes failures of the intake form the way they are flashed.
func checkError(err error) error {
	return &customerrors.Error{
		Code:    customerrors.GetStatus(err),
		Message: "Error: " + customerrors.GetMessage(err),
	}
}
