package script

import "errors"

// ErrScriptSyntax is returned for malformed definition text: unbalanced
// quotes, a bad set or define line, or a broken textblock.
var ErrScriptSyntax = errors.New("script syntax error")
