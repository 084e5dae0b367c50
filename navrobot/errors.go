package navrobot

import "github.com/pkg/errors"

var errSenseFailed = errors.New("simulated: injected sensor failure")
