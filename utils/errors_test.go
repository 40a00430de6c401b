package utils

import (
	"errors"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestNewUnexpectedTypeError(t *testing.T) {
	err := NewUnexpectedTypeError[AttributeMap](3)
	test.That(t, err.Error(), test.ShouldEqual, "expected utils.AttributeMap but got int")

	err = NewUnexpectedTypeError[*AttributeMap](nil)
	test.That(t, err.Error(), test.ShouldEqual, "expected *utils.AttributeMap but got <nil>")
}

func TestConfigValidationErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("walker", "lidar")
	test.That(t, err.Error(), test.ShouldEqual, `error validating "walker": "lidar" is required`)

	cause := errors.New("bad window")
	err = NewConfigValidationError("components.0", cause)
	test.That(t, err.Error(), test.ShouldEqual, `error validating "components.0": bad window`)
	test.That(t, errors.Is(err, cause), test.ShouldBeTrue)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"lidar1", "base-left", "Front_Lidar", "0"} {
		test.That(t, ValidateName(name), test.ShouldBeNil)
	}

	err := ValidateName("-lidar")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "must start with a letter or number")
	test.That(t, ValidateName("lidar/1"), test.ShouldNotBeNil)
	test.That(t, ValidateName(""), test.ShouldNotBeNil)

	err = ValidateName(strings.Repeat("a", 61))
	test.That(t, err.Error(), test.ShouldContainSubstring, "60 characters or fewer")
}
