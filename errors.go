/*
 * errors.go, part of molforge.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 */

package mol

import "fmt"

// Error is the interface implemented by all errors produced in this
// library. The Decorate method adds information as the error travels up
// the call stack, without changing its type or wrapping it. Each
// element of the decoration slice is a function name in the calling
// stack, optionally followed by extra info as "FunctionName: info".
// Passing an empty string returns the current decoration unchanged.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete Error used throughout the package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newError(format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...)}
}

// errDecorate decorates err if it implements Error, and otherwise
// wraps it in a CError carrying the caller's name.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		err2 = &CError{msg: err.Error()}
	}
	err2.Decorate(caller)
	return err2
}
