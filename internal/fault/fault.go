// Package fault defines the failure signal passed between application
// layers and the static dictionary that renders it into a localized HTTP
// response. A Fault is a (status, category) pair encoded as a string code
// of the form "<status>-<category>", or bare "<status>" for the default
// category. It is the only vocabulary inner layers use to report failure;
// no component below the dictionary constructs user-facing text.
package fault

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CategoryDefault is the category used when a code carries no explicit
// category suffix. Every registered status has a default entry.
const CategoryDefault = "default"

// Fault is the tagged failure value carried between components. It
// implements error so it can travel through ordinary error returns and be
// recovered at the transport boundary with [From].
type Fault struct {
	// Status is the HTTP status the signal renders to.
	Status int

	// Category selects the message entry within the status; unknown
	// categories fall back to CategoryDefault during rendering.
	Category string
}

// New constructs a Fault for the given status and category. An empty
// category is normalized to CategoryDefault.
func New(status int, category string) *Fault {
	if category == "" {
		category = CategoryDefault
	}
	return &Fault{Status: status, Category: category}
}

// Code returns the wire form of the signal: "404-user", or bare "404"
// for the default category.
func (f *Fault) Code() string {
	if f.Category == CategoryDefault {
		return strconv.Itoa(f.Status)
	}
	return fmt.Sprintf("%d-%s", f.Status, f.Category)
}

// Error implements the error interface; the message is the signal code.
func (f *Fault) Error() string {
	return f.Code()
}

// Is reports whether target carries the same (status, category) pair,
// so wrapped faults still match their sentinels via [errors.Is].
func (f *Fault) Is(target error) bool {
	var other *Fault
	if !errors.As(target, &other) {
		return false
	}
	return f.Status == other.Status && f.Category == other.Category
}

// Parse decodes a signal code back into a Fault. Codes that do not start
// with status digits decode to the internal-error fallback.
func Parse(code string) *Fault {
	statusPart, category, found := strings.Cut(code, "-")
	if !found {
		category = CategoryDefault
	}

	status, err := strconv.Atoi(statusPart)
	if err != nil {
		return ErrInternal
	}

	return New(status, category)
}

// From recovers the Fault from an error chain. Errors that carry no Fault
// value have their message decoded with [Parse], so a string-coded signal
// that crossed a process boundary keeps its (status, category) pair.
// Anything else, including a nil error, maps to the internal-error
// fallback, so the transport boundary can always render something.
func From(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	if err != nil {
		return Parse(err.Error())
	}
	return ErrInternal
}

// Sentinel failure signals. Components return these (optionally wrapped
// with %w for context) and callers match them with [errors.Is].
var (
	ErrBadRequest         = New(400, CategoryDefault)
	ErrUnauthorized       = New(401, CategoryDefault)
	ErrInvalidToken       = New(401, "token")
	ErrInvalidCredentials = New(401, "credentials")
	ErrForbidden          = New(403, CategoryDefault)
	ErrNotFound           = New(404, CategoryDefault)
	ErrUserNotFound       = New(404, "user")
	ErrNoResults          = New(404, "results")
	ErrConflict           = New(409, CategoryDefault)
	ErrEmailAlreadyExists = New(409, "emailAlreadyExists")
	ErrInternal           = New(500, CategoryDefault)
)

// Success confirmations for mutations whose natural return is "no payload,
// just confirmation". They are rendered through the same dictionary as
// failures but are never returned through error values.
var (
	ConfirmDeleted = New(200, "delete")
	ConfirmUpdated = New(200, "update")
)
