// Package common defines shared constants and sentinel errors used across
// bookshelf client layers. Callers should use errors.Is to match these values.
package common

import "errors"

// ErrorNotFound is returned by repositories when a key is absent.
var ErrorNotFound = errors.New("not found")
