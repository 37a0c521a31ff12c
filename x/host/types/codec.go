package types

import (
	jsoniter "github.com/json-iterator/go"
)

// JSON is the wire codec for contract messages, query payloads and stored
// contract records.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// MustMarshalJSON encodes v and panics on failure. Only use it for values whose
// encoding cannot fail (plain structs built in code).
func MustMarshalJSON(v any) []byte {
	bz, err := JSON.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
