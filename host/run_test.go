// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package host

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/choria-io/fileconverge/manager"
	"github.com/choria-io/fileconverge/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"
)

var _ = Describe("Run", func() {
	var (
		td      string
		out     *bytes.Buffer
		log     model.Logger
		factory ManagerFactory
	)

	BeforeEach(func() {
		td = GinkgoT().TempDir()
		out = bytes.NewBuffer(nil)
		log = manager.NewSlogTextLogger(GinkgoWriter, slog.LevelDebug)
		factory = func(checkMode bool) (model.Manager, error) {
			var opts []manager.Option
			if checkMode {
				opts = append(opts, manager.WithCheckMode())
			}

			return manager.NewManager(log, log, opts...)
		}
	})

	writeArgs := func(args string) string {
		GinkgoHelper()

		file := filepath.Join(td, "args")
		Expect(os.WriteFile(file, []byte(args), 0600)).To(Succeed())

		return file
	}

	It("Should create files and report success", func(ctx context.Context) {
		path := filepath.Join(td, "sub", "hello.txt")
		file := writeArgs(`{"path":"` + path + `","content":"hello world"}`)

		Expect(Run(ctx, file, out, log, factory)).To(Equal(ExitOK))

		res := gjson.ParseBytes(out.Bytes())
		Expect(res.Get("changed").Bool()).To(BeTrue())
		Expect(res.Get("original_message").String()).To(Equal(path))
		Expect(res.Get("message").String()).To(Equal(model.MessageFileCreated))
		Expect(res.Get("failed").Exists()).To(BeFalse())
		Expect(res.Get("msg").Exists()).To(BeFalse())
		Expect(os.ReadFile(path)).To(Equal([]byte("hello world")))
	})

	It("Should be idempotent across invocations", func(ctx context.Context) {
		path := filepath.Join(td, "hello.txt")
		Expect(os.WriteFile(path, []byte("hello world"), 0600)).To(Succeed())
		file := writeArgs("path=" + path + " content='hello world'")

		Expect(Run(ctx, file, out, log, factory)).To(Equal(ExitOK))

		res := gjson.ParseBytes(out.Bytes())
		Expect(res.Get("changed").Bool()).To(BeFalse())
		Expect(res.Get("message").String()).To(Equal(model.MessageFileUnchanged))
	})

	It("Should honor check mode", func(ctx context.Context) {
		path := filepath.Join(td, "check.txt")
		file := writeArgs(`{"path":"` + path + `","content":"x","_ansible_check_mode":true}`)

		Expect(Run(ctx, file, out, log, factory)).To(Equal(ExitOK))

		res := gjson.ParseBytes(out.Bytes())
		Expect(res.Get("changed").Bool()).To(BeFalse())
		Expect(res.Get("original_message").String()).To(Equal(path))
		Expect(path).ToNot(BeAnExistingFile())
	})

	It("Should fail validation before convergence", func(ctx context.Context) {
		file := writeArgs(`{"path":true,"content":"x"}`)

		Expect(Run(ctx, file, out, log, func(bool) (model.Manager, error) {
			Fail("manager should not be created")
			return nil, nil
		})).To(Equal(ExitFailed))

		res := gjson.ParseBytes(out.Bytes())
		Expect(res.Get("failed").Bool()).To(BeTrue())
		Expect(res.Get("changed").Bool()).To(BeFalse())
		Expect(res.Get("original_message").String()).To(BeEmpty())
		Expect(res.Get("msg").String()).To(ContainSubstring("argument path is of type boolean, expected string"))
	})

	It("Should echo valid paths on validation failures", func(ctx context.Context) {
		file := writeArgs(`{"path":"/tmp/x","unknown":1}`)

		Expect(Run(ctx, file, out, log, factory)).To(Equal(ExitFailed))
		Expect(gjson.GetBytes(out.Bytes(), "original_message").String()).To(Equal("/tmp/x"))
	})

	It("Should report filesystem failures", func(ctx context.Context) {
		file := writeArgs(`{"path":"` + td + `","content":"x"}`)

		Expect(Run(ctx, file, out, log, factory)).To(Equal(ExitFailed))

		res := gjson.ParseBytes(out.Bytes())
		Expect(res.Get("failed").Bool()).To(BeTrue())
		Expect(res.Get("original_message").String()).To(Equal(td))
		Expect(res.Get("msg").String()).To(HavePrefix("Failed to read existing file: "))
	})

	It("Should report manager failures", func(ctx context.Context) {
		file := writeArgs(`{"path":"/tmp/x"}`)

		Expect(Run(ctx, file, out, log, func(bool) (model.Manager, error) {
			return nil, errors.New("no manager")
		})).To(Equal(ExitFailed))

		res := gjson.ParseBytes(out.Bytes())
		Expect(res.Get("msg").String()).To(Equal("no manager"))
		Expect(res.Get("original_message").String()).To(Equal("/tmp/x"))
	})

	It("Should fail for missing argument files", func(ctx context.Context) {
		Expect(Run(ctx, filepath.Join(td, "missing"), out, log, factory)).To(Equal(ExitFailed))
		Expect(gjson.GetBytes(out.Bytes(), "failed").Bool()).To(BeTrue())
	})
})
