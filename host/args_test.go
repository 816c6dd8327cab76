// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/choria-io/fileconverge/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Arguments", func() {
	Describe("ParseArguments", func() {
		It("Should parse JSON arguments", func() {
			args, err := ParseArguments([]byte(`{"path":"/tmp/x","content":"hello\nworld","_ansible_check_mode":true,"_ansible_verbosity":3}`))
			Expect(err).ToNot(HaveOccurred())
			Expect(args.Request).To(Equal(model.Request{Path: "/tmp/x", Content: "hello\nworld"}))
			Expect(args.CheckMode).To(BeTrue())
		})

		It("Should default content and check mode", func() {
			args, err := ParseArguments([]byte(`{"path":"/tmp/x","content":null}`))
			Expect(err).ToNot(HaveOccurred())
			Expect(args.Request.Content).To(BeEmpty())
			Expect(args.CheckMode).To(BeFalse())
		})

		It("Should parse the provider", func() {
			args, err := ParseArguments([]byte(`{"path":"/tmp/x","provider":"atomic"}`))
			Expect(err).ToNot(HaveOccurred())
			Expect(args.Request.Provider).To(Equal("atomic"))
		})

		It("Should parse legacy key=value arguments", func() {
			args, err := ParseArguments([]byte(`path=/tmp/x content='hello world' _ansible_check_mode=True`))
			Expect(err).ToNot(HaveOccurred())
			Expect(args.Request).To(Equal(model.Request{Path: "/tmp/x", Content: "hello world"}))
			Expect(args.CheckMode).To(BeTrue())

			args, err = ParseArguments([]byte(`path=/tmp/x content="a=b" _ansible_check_mode=no`))
			Expect(err).ToNot(HaveOccurred())
			Expect(args.Request.Content).To(Equal("a=b"))
			Expect(args.CheckMode).To(BeFalse())
		})

		It("Should reject malformed key=value arguments", func() {
			_, err := ParseArguments([]byte(`path=/tmp/x garbage`))
			Expect(err).To(MatchError(model.ErrInvalidArguments))
			Expect(err).To(MatchError(ContainSubstring(`"garbage" is not in key=value format`)))

			_, err = ParseArguments([]byte(`path='/tmp/x`))
			Expect(err).To(MatchError(model.ErrInvalidArguments))
		})

		It("Should reject empty and invalid documents", func() {
			_, err := ParseArguments([]byte("  \n"))
			Expect(err).To(MatchError(model.ErrInvalidArguments))

			_, err = ParseArguments([]byte(`{"path":`))
			Expect(err).To(MatchError(model.ErrInvalidArguments))
		})

		It("Should reject non string paths", func() {
			args, err := ParseArguments([]byte(`{"path":true,"content":"x"}`))
			Expect(err).To(MatchError(ContainSubstring("argument path is of type boolean, expected string")))
			Expect(errors.Is(err, model.ErrInvalidParameterType)).To(BeTrue())
			Expect(errors.Is(err, model.ErrInvalidRequest)).To(BeTrue())
			Expect(errors.Is(err, model.ErrIO)).To(BeFalse())
			Expect(args.Request.Path).To(BeEmpty())

			var verr *model.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
			Expect(verr.Field).To(Equal("path"))

			_, err = ParseArguments([]byte(`{"path":["/tmp/x"]}`))
			Expect(err).To(MatchError(ContainSubstring("argument path is of type array, expected string")))
		})

		It("Should reject non string content", func() {
			args, err := ParseArguments([]byte(`{"path":"/tmp/x","content":10}`))
			Expect(err).To(MatchError(ContainSubstring("argument content is of type number, expected string")))
			Expect(args.Request.Path).To(Equal("/tmp/x"))
		})

		It("Should reject non boolean check mode", func() {
			_, err := ParseArguments([]byte(`{"path":"/tmp/x","_ansible_check_mode":"yes"}`))
			Expect(err).To(MatchError(ContainSubstring("expected boolean")))
			Expect(err).To(MatchError(model.ErrInvalidParameterType))
		})

		It("Should require a path", func() {
			_, err := ParseArguments([]byte(`{"content":"x"}`))
			Expect(err).To(MatchError(model.ErrPathRequired))
			Expect(err).To(MatchError(ContainSubstring("missing required arguments: path")))

			_, err = ParseArguments([]byte(`{"path":null}`))
			Expect(err).To(MatchError(model.ErrPathRequired))

			_, err = ParseArguments([]byte(`{"path":""}`))
			Expect(err).To(MatchError(model.ErrPathRequired))
		})

		It("Should reject unknown parameters", func() {
			args, err := ParseArguments([]byte(`{"path":"/tmp/x","mode":"0644","owner":"root"}`))
			Expect(err).To(MatchError(model.ErrUnknownParameter))
			Expect(err).To(MatchError(ContainSubstring("Unsupported parameters for (fileconverge) module: mode, owner")))
			Expect(args.Request.Path).To(Equal("/tmp/x"))
		})
	})

	Describe("ParseArgumentsFile", func() {
		It("Should read the file", func() {
			file := filepath.Join(GinkgoT().TempDir(), "args")
			data, err := json.Marshal(map[string]any{"path": "/tmp/x", "content": "y"})
			Expect(err).ToNot(HaveOccurred())
			Expect(os.WriteFile(file, data, 0600)).To(Succeed())

			args, err := ParseArgumentsFile(file)
			Expect(err).ToNot(HaveOccurred())
			Expect(args.Request.Content).To(Equal("y"))
		})

		It("Should fail for missing files", func() {
			_, err := ParseArgumentsFile(filepath.Join(GinkgoT().TempDir(), "missing"))
			Expect(err).To(MatchError(model.ErrInvalidArguments))
		})
	})

	Describe("Schema", func() {
		It("Should be valid JSON", func() {
			Expect(json.Valid(Schema())).To(BeTrue())
			_, err := compiledSchema()
			Expect(err).ToNot(HaveOccurred())
		})
	})
})
