package validation

import (
	"reflect"
	"regexp"
	"strings"

	"budgetflow/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("transaction_source", validateTransactionSource)
	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("budget_percentage", validateBudgetPercentage)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateTransactionType validates that transaction type is one of the allowed types
func validateTransactionType(fl validator.FieldLevel) bool {
	return models.IsValidTransactionType(strings.ToLower(fl.Field().String()))
}

// validateTransactionSource validates that the source is one of the allowed values
func validateTransactionSource(fl validator.FieldLevel) bool {
	return models.IsValidTransactionSource(strings.ToLower(fl.Field().String()))
}

// validateCurrencyCode validates an ISO 4217 style three-letter currency code
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^[A-Z]{3}$`, code)
	return matched
}

// validateBudgetPercentage validates that a percentage sits in the (0, 100] range
func validateBudgetPercentage(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value := fl.Field().Int()
		return value > 0 && value <= 100
	case reflect.Float32, reflect.Float64:
		value := fl.Field().Float()
		return value > 0 && value <= 100
	case reflect.Struct:
		if value, ok := fl.Field().Interface().(decimal.Decimal); ok {
			return value.GreaterThan(decimal.Zero) && value.LessThanOrEqual(oneHundred)
		}
		return false
	default:
		return false
	}
}
