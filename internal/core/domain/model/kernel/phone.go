package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"moving/internal/pkg/errs"
	"moving/internal/pkg/guard"
)

var (
	ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone constructor")

	phonePattern = regexp.MustCompile(`^09\d{9}$`)
)

// Phone is a mobile number in the national format, e.g. "09121234567".
type Phone struct { //nolint:recvcheck //using for validation
	number string
	guard  guard.ConstructorGuard
}

// NewPhone trims surrounding whitespace and checks the number against ^09\d{9}$.
func NewPhone(number string) (Phone, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(number) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause(
			"phone",
			fmt.Errorf("%q must be 11 digits starting with 09", number),
		)
	}

	return Phone{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) String() string {
	return p.number
}

func (p Phone) IsEqual(other Phone) bool {
	return p.number == other.number
}
