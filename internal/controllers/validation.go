package controllers

import (
	"ProjectScoreService/internal/models"

	"github.com/go-playground/validator/v10"
)

const metricFieldTag = "metricfield"

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation(metricFieldTag, validateMetricField); err != nil {
		panic(err)
	}
	return validate
}

func validateMetricField(fl validator.FieldLevel) bool {
	return models.IsMetricField(fl.Field().String())
}
