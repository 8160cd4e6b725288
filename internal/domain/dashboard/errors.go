package dashboard

import "errors"

var ErrUnknownModule = errors.New("unknown module")
