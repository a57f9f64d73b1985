package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"bitbucket.org/bluelinetech/blt_backend/utils"
	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

// ToJSONWithoutField converts an object to JSON after temporarily removing a specified field
func ToJSONWithoutField(obj interface{}, fieldName string) ([]byte, error) {
	// Get the value of the object
	val := reflect.ValueOf(obj)

	// If the value is an interface, get the concrete value it holds
	if val.Kind() == reflect.Interface {
		val = val.Elem()
	}

	// If the value is not a pointer, create a pointer to it
	if val.Kind() != reflect.Ptr {
		valPtr := reflect.New(val.Type())
		valPtr.Elem().Set(val)
		val = valPtr
	}

	// Dereference the pointer
	val = val.Elem()

	// Ensure the value is a struct
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct, got %v", val.Kind())
	}

	// Find the field by name
	field := val.FieldByName(fieldName)
	var err error
	var jsonData []byte
	if field.IsValid() {
		// Check if the field is a slice
		if field.Kind() == reflect.Slice {
			// Iterate over the slice elements
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if elem.Kind() == reflect.Struct {
					elemPtr := reflect.New(elem.Type())
					elemPtr.Elem().Set(elem)
					field.Index(i).Set(elemPtr.Elem())
				}
			}
		}

		// Store the original value of the field
		originalValue := reflect.New(field.Type()).Elem()
		originalValue.Set(field)

		// Clear the field value
		field.Set(reflect.Zero(field.Type()))

		// Convert the object to JSON
		jsonData, err = json.Marshal(val.Interface())

		// Restore the original value
		field.Set(originalValue)
	} else {
		// Convert the object to JSON
		jsonData, err = json.Marshal(val.Interface())
	}
	if err != nil {
		return nil, err
	}
	return jsonData, nil
}

func calculateDueDate(date time.Time, paymentTerms PaymentTerms, customDays int) *time.Time {
	var dueDate time.Time
	switch terms := paymentTerms; terms {
	case PaymentTermsDueOnReceipt:
		dueDate = date
	case PaymentTermsNet15:
		dueDate = date.AddDate(0, 0, 15)
	case PaymentTermsNet30:
		dueDate = date.AddDate(0, 0, 30)
	case PaymentTermsNet45:
		dueDate = date.AddDate(0, 0, 45)
	case PaymentTermsNet60:
		dueDate = date.AddDate(0, 0, 60)
	case PaymentTermsDueEndOfMonth:
		year, month, _ := date.Date()
		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, date.Location())
		dueDate = firstOfMonth.AddDate(0, 1, -1)
	case PaymentTermsDueEndOfNextMonth:
		year, month, _ := date.Date()
		firstOfNextMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, date.Location())
		dueDate = firstOfNextMonth.AddDate(0, 1, -1)
	case PaymentTermsCustom:
		dueDate = date.AddDate(0, 0, customDays)
	}
	return &dueDate
}

var ErrorNumberConflict = errors.New("document number conflict, please retry")

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
