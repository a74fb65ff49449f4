package repository

import (
	"errors"
	"strings"

	"github.com/yieldvault/yieldvault/pkg/domain"
	"gorm.io/gorm"
)

// translateError maps driver-level failures onto the domain taxonomy so
// services never see gorm errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
		return domain.ErrAlreadyExists
	}
	return err
}
