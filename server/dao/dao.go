// Package dao provides data access objects for the muchd server.
package dao

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Systems() SystemRepository
	Formulas() FormulaRepository
	Checks() CheckRepository
	Close() error
}

// SystemRepository persists uploaded LTSes in their original Aldebaran text
// form, along with the metadata needed to list and retrieve them without
// re-parsing every time.
type SystemRepository interface {
	Create(ctx context.Context, sys System) (System, error)
	GetByID(ctx context.Context, id uuid.UUID) (System, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]System, error)
	GetAll(ctx context.Context) ([]System, error)
	Update(ctx context.Context, id uuid.UUID, sys System) (System, error)
	Delete(ctx context.Context, id uuid.UUID) (System, error)
	Close() error
}

// System is a stored Labeled Transition System, kept in its source Aldebaran
// text form; the server parses it on demand (through internal/cache) rather
// than storing the parsed form.
type System struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Source   string // Aldebaran .aut text
	Created  time.Time
	Modified time.Time
}

// FormulaRepository persists named mu-calculus formulas a user has uploaded,
// so later checks can reference a formula by ID instead of re-sending its
// text.
type FormulaRepository interface {
	Create(ctx context.Context, f Formula) (Formula, error)
	GetByID(ctx context.Context, id uuid.UUID) (Formula, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]Formula, error)
	GetAll(ctx context.Context) ([]Formula, error)
	Update(ctx context.Context, id uuid.UUID, f Formula) (Formula, error)
	Delete(ctx context.Context, id uuid.UUID) (Formula, error)
	Close() error
}

// Formula is a stored, named mu-calculus formula in its source text form.
type Formula struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Source   string
	Created  time.Time
	Modified time.Time
}

// CheckRepository persists the result of running the checker against a
// System+Formula pair, including the diagnostics that make the
// alternation-depth reuse behavior of the Emerson-Lei evaluator observable
// after the fact.
type CheckRepository interface {
	Create(ctx context.Context, c CheckRun) (CheckRun, error)
	GetByID(ctx context.Context, id uuid.UUID) (CheckRun, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]CheckRun, error)
	GetAll(ctx context.Context) ([]CheckRun, error)
	Delete(ctx context.Context, id uuid.UUID) (CheckRun, error)
	Close() error
}

// CheckRun records one evaluation of a formula against a system.
type CheckRun struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SystemID   uuid.UUID
	FormulaID  uuid.UUID
	Algorithm  string // "naive" or "emerson-lei"
	Satisfied  bool
	Iterations int // total fixed-point iterations, from eval.Stats.Total()
	Created    time.Time
}

type UserRepository interface {

	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)

	// Close closes the connection.
	Close() error
}

type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

type User struct {
	ID             uuid.UUID     // PK, NOT NULL
	Username       string        // UNIQUE, NOT NULL
	Password       string        // NOT NULL
	Email          *mail.Address // NOT NULL
	Role           Role          // NOT NULL
	Created        time.Time     // NOT NULL
	Modified       time.Time
	LastLogoutTime time.Time // NOT NULL DEFAULT NOW()
	LastLoginTime  time.Time // NOT NULL
}
