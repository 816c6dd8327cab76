// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"io/fs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	Describe("IOError", func() {
		It("Should format read errors", func() {
			err := NewReadError("/tmp/x", NewResult("/tmp/x"), fs.ErrPermission)
			Expect(err.Error()).To(Equal("Failed to read existing file: permission denied"))
			Expect(errors.Is(err, ErrIO)).To(BeTrue())
			Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())
			Expect(errors.Is(err, ErrInvalidRequest)).To(BeFalse())
			Expect(err.Result.OriginalMessage).To(Equal("/tmp/x"))
		})

		It("Should format write errors", func() {
			err := NewWriteError("/tmp/x", NewResult("/tmp/x"), errors.New("disk full"))
			Expect(err.Error()).To(Equal("Failed to write file: disk full"))
			Expect(err.Op).To(Equal(IOOperationWrite))
			Expect(errors.Is(err, ErrIO)).To(BeTrue())
		})
	})

	Describe("ValidationError", func() {
		It("Should wrap the cause", func() {
			err := NewValidationError("path", ErrInvalidParameterType, "argument %s is of type %s, expected string", "path", "boolean")
			Expect(err.Error()).To(Equal("path: invalid parameter type: argument path is of type boolean, expected string"))
			Expect(errors.Is(err, ErrInvalidRequest)).To(BeTrue())
			Expect(errors.Is(err, ErrInvalidParameterType)).To(BeTrue())
			Expect(errors.Is(err, ErrIO)).To(BeFalse())
		})

		It("Should support errors without a field", func() {
			err := NewValidationError("", ErrInvalidArguments, "")
			Expect(err.Error()).To(Equal("invalid arguments"))
		})
	})
})
