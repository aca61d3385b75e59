package services

import (
	"context"
	"fmt"

	appErr "github.com/devtrack/engine/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// inTx runs fn in one transaction. The entity write and its activity row
// commit together or not at all.
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return appErr.Wrap(tx.Error, appErr.CodeInternal, "begin transaction failed")
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return appErr.Wrap(err, appErr.CodeInternal, "commit transaction failed")
	}
	return nil
}

func validateInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("invalid input: %v", err))
	}
	return nil
}
