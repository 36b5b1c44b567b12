package models

// UnsetValue marks a mapped variable whose source column was not part of the
// result set. It renders as null, unlike SQL NULL which drops the key.
type UnsetValue struct{}

var Unset = UnsetValue{}

func (UnsetValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (UnsetValue) MarshalYAML() (any, error) {
	return nil, nil
}

func (UnsetValue) String() string {
	return ""
}
