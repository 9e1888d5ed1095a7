package channel

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier 频道标识符不合法
var ErrInvalidIdentifier = errors.New("channel: invalid identifier")

// ValidateNamespace 校验命名空间
func ValidateNamespace(namespace string) error {
	if err := validatePart(namespace); err != nil {
		return fmt.Errorf("%w: namespace %q %s", ErrInvalidIdentifier, namespace, err.Error())
	}
	return nil
}

// ValidatePath 校验路径
func ValidatePath(path string) error {
	if err := validatePart(path); err != nil {
		return fmt.Errorf("%w: path %q %s", ErrInvalidIdentifier, path, err.Error())
	}
	return nil
}

func validatePart(s string) error {
	if s == "" {
		return errors.New("is empty")
	}
	for i := 0; i < len(s); i++ {
		if !validChar(s[i]) {
			return fmt.Errorf("has invalid character %q at %d", s[i], i)
		}
	}
	return nil
}

// validChar [a-z0-9_.-]
func validChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '.' || c == '-'
}
