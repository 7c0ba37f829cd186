package validator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterAll registers every custom validation tag once per process
func RegisterAll() error {
	registerOnce.Do(func() {
		registerErr = registerAll()
	})
	return registerErr
}

func registerAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	validations := map[string]validator.Func{
		"phone":            ValidatePhone,
		"membershiptype":   ValidateMembershipType,
		"membershipstatus": ValidateMembershipStatus,
		"interest":         ValidateInterest,
		"modulestatus":     ValidateModuleStatus,
		"bcryptlen":        ValidateBcryptLength,
	}

	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", tag, err)
		}
	}

	slog.Info("공통 Validator 등록 완료", "validators", len(validations))
	return nil
}
