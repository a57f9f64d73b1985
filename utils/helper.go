package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"
	"unicode"

	"bitbucket.org/bluelinetech/blt_backend/config"
	"github.com/bsm/redislock"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
	"gorm.io/gorm"
)

var CountryCode = "US"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// ValidateStruct runs the binding tags on an input struct and returns
// field-level errors flattened into one message.
func ValidateStruct(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := ProcessValidationErrors(err)
			parts := make([]string, 0, len(fields))
			for field, tag := range fields {
				parts = append(parts, LowercaseFirst(field)+" "+tag)
			}
			sort.Strings(parts)
			return errors.New("invalid input: " + strings.Join(parts, ", "))
		}
		return err
	}
	return nil
}

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

func IsRecordValidByID(id uint, model interface{}, db *gorm.DB) bool {

	modelType := reflect.TypeOf(model).Elem() // Get the type of the element (struct)
	record := reflect.New(modelType).Interface()
	// Construct a query using the model's primary key
	query := db.Where("id = ?", id)

	// Perform the query
	if err := query.First(record).Error; err != nil {
		return false // Record with the given ID does not exist
	}

	return true
}

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil // Phone number is valid for the specified country code
}

func GenerateUniqueFilename() string {

	timestamp := time.Now().UnixNano()

	random := rand.Intn(1000)

	uniqueFilename := fmt.Sprintf("%d_%d", timestamp, random)

	return uniqueFilename
}

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func ConvertToLocalTime(utcTime time.Time, timezone string) time.Time {
	//init the loc
	loc, _ := time.LoadLocation(timezone)
	//set timezone,
	return utcTime.In(loc)
}

// returns slice removing duplicate elements
func UniqueSlice[T comparable](slice []T) []T {
	inResult := make(map[T]bool)
	var result []T
	for _, elm := range slice {
		if _, ok := inResult[elm]; !ok {
			// if not exists in map, append it, otherwise do nothing
			inResult[elm] = true
			result = append(result, elm)
		}
	}
	return result
}

func GetLastMonthsRange(months int) (time.Time, time.Time) {
	now := time.Now()
	start := now.AddDate(0, -months, 0)
	return start, now
}

// GetThisMonthRange returns the start and end dates of the current month.
func GetThisMonthRange() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1).Add(time.Hour*23 + time.Minute*59 + time.Second*59)
	return start, end
}

// GetPreviousMonthRange returns the start and end dates of the previous month.
func GetPreviousMonthRange() (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1).Add(time.Hour*23 + time.Minute*59 + time.Second*59)
	return start, end
}

// GetThisWeekRange returns the start (Monday) and end (Sunday) of the current week.
func GetThisWeekRange() (time.Time, time.Time) {
	now := time.Now()
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 6).Add(time.Hour*23 + time.Minute*59 + time.Second*59)
	return start, end
}

// execute given template string and return generated string
func ExecTemplate(tString string, data map[string]interface{}) (string, error) {
	t, err := template.New("sql").Parse(tString)
	if err != nil {
		return "", errors.New("error parsing sql template: " + err.Error())
	}
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return "", errors.New("failed to execute sql template: " + err.Error())
	}
	return b.String(), nil
}

// safely dereference pointer of type T, nil pointer return zero value or optional default
func DereferencePtr[T any](ptr *T, defaults ...T) T {
	var defaultValue T
	if len(defaults) > 0 {
		defaultValue = defaults[0]
	}
	if ptr == nil {
		return defaultValue
	}
	return *ptr
}

// return nil if boolean expression is true, else the given default
func NilOrElse[T any](b bool, elseValue T) *T {
	if b {
		return nil
	}
	return &elseValue
}

func NilIfEmpty[T comparable](ptr T) *T {
	var defaultZero T
	if ptr == defaultZero {
		return nil
	}
	return &ptr
}

// turn bidSheet to BidSheet
func UppercaseFirst(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// turn ToggleActive to toggleActive
func LowercaseFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// mergeSlices merges two integer slices and removes duplicates
func MergeIntSlices(slice1, slice2 []int) []int {
	elementMap := make(map[int]bool)
	mergedSlice := []int{}

	// Add elements from the first slice to the map
	for _, elem := range slice1 {
		if !elementMap[elem] {
			elementMap[elem] = true
			mergedSlice = append(mergedSlice, elem)
		}
	}

	// Add elements from the second slice to the map
	for _, elem := range slice2 {
		if !elementMap[elem] {
			elementMap[elem] = true
			mergedSlice = append(mergedSlice, elem)
		}
	}

	return mergedSlice
}

func AreIntSlicesEqual(slice1, slice2 []int) bool {
	if len(slice1) != len(slice2) {
		return false
	}

	// Create copies of the slices to avoid modifying the original slices
	s1 := append([]int(nil), slice1...)
	s2 := append([]int(nil), slice2...)

	// Sort the slices
	sort.Ints(s1)
	sort.Ints(s2)

	// Compare the sorted slices
	for i := range s1 {
		if s1[i] != s2[i] {
			return false
		}
	}

	return true
}

// OldestDate returns the oldest (earliest) date among the provided dates.
func FindOldestDate(dates ...*time.Time) *time.Time {
	var oldest *time.Time
	for _, date := range dates {
		if date == nil {
			continue
		}
		if oldest == nil || date.Before(*oldest) {
			oldest = date
		}
	}
	return oldest
}

func ConvertToDate(t time.Time, timezone string) (time.Time, error) {
	if timezone == "" {
		timezone = "America/Denver"
	}

	// Load the location for the given timezone
	location, err := time.LoadLocation(timezone)
	if err != nil {
		fmt.Println("Error loading location:", err)
		return t, err
	}
	localTime := t.In(location)

	// Extract only the date (without time) by using localTime.Year, Month, Day
	// We then create a new time.Time object with zero time.
	dateOnly := time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, location)
	return dateOnly, nil
}

// ParseDecimal converts a string to a decimal.Decimal value.
func ParseDecimal(value string) (decimal.Decimal, error) {
	// Remove any whitespace and check for empty strings
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("empty decimal string")
	}

	// Convert string to decimal
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return dec, nil
}

// NamedLock obtains a redis lock for a named job and returns its release func.
// Prevents two operator processes from running the same sweep at once.
func NamedLock(ctx context.Context, name string, moduleName string, functionName string) (func(), error) {
	logger := config.GetLogger()
	locker := config.GetRedisLock()
	if locker == nil {
		// Avoid nil-pointer panics when Redis lock isn't initialized yet.
		config.LogError(logger, moduleName, functionName, "Redis lock not initialized", name, errors.New("redis lock is nil"))
		return nil, errors.New("service not ready (redis lock not initialized)")
	}
	lockKey := fmt.Sprintf("lock:%s", name)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock", name, err)
		return nil, errors.New("could not obtain lock for " + name)
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock", name, err)
		return nil, err
	}
	release := func() {
		_ = lock.Release(ctx)
	}
	return release, nil
}
