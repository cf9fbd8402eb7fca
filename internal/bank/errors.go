package bank

import "errors"

// ErrCorruptModule is returned by Map when a previously cached plugin's
// file can no longer be reloaded (spec.md §7, "corrupt_module").
var ErrCorruptModule = errors.New("bank: corrupt module")
