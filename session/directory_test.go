// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"os"
	"path/filepath"

	"github.com/choria-io/fileconverge/model"
	"github.com/choria-io/fileconverge/model/modelmocks"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("DirectorySessionStore", func() {
	var (
		mockCtrl *gomock.Controller
		logger   *modelmocks.MockLogger
		tempDir  string
		store    *DirectorySessionStore
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		logger = modelmocks.NewMockLogger(mockCtrl)
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
		logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()

		tempDir = filepath.Join(GinkgoT().TempDir(), "session")

		var err error
		store, err = NewDirectorySessionStore(tempDir, logger)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("NewDirectorySessionStore", func() {
		It("Should require a directory", func() {
			_, err := NewDirectorySessionStore("", logger)
			Expect(err).To(MatchError("session directory path cannot be empty"))
		})

		It("Should clean and absolute the directory", func() {
			s, err := NewDirectorySessionStore("/some//path/../clean/./path", logger)
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Directory()).To(Equal("/some/clean/path"))

			s, err = NewDirectorySessionStore("./relative", logger)
			Expect(err).ToNot(HaveOccurred())
			Expect(filepath.IsAbs(s.Directory())).To(BeTrue())
		})
	})

	Describe("StartSession", func() {
		It("Should create the directory and record a start event", func() {
			Expect(tempDir).ToNot(BeADirectory())
			Expect(store.StartSession()).To(Succeed())
			Expect(tempDir).To(BeADirectory())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0]).To(BeAssignableToTypeOf(&model.SessionStartEvent{}))

			Expect(filepath.Join(tempDir, events[0].SessionEventID()+".event")).To(BeARegularFile())
		})
	})

	Describe("RecordEvent", func() {
		It("Should fail when the session was not started", func() {
			err := store.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/a"))
			Expect(err).To(MatchError(ContainSubstring("does not exist")))
		})

		It("Should reject invalid event ids", func() {
			Expect(store.StartSession()).To(Succeed())

			event := model.NewTransactionEvent(model.FileTypeName, "/a")
			event.EventID = "../../escape"
			Expect(store.RecordEvent(event)).To(MatchError(ContainSubstring("invalid event ID")))
		})

		It("Should round trip transaction events", func() {
			Expect(store.StartSession()).To(Succeed())

			event := model.NewTransactionEvent(model.FileTypeName, "/etc/motd")
			event.Provider = "posix"
			event.Changed = true
			event.Request = &model.Request{Path: "/etc/motd", Content: "hello"}
			event.Result = model.NewResult("/etc/motd").WithChange(model.MessageFileCreated)
			Expect(store.RecordEvent(event)).To(Succeed())

			events, err := store.EventsForResource(model.FileTypeName, "/etc/motd")
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))
			Expect(events[0].EventID).To(Equal(event.EventID))
			Expect(events[0].Provider).To(Equal("posix"))
			Expect(events[0].Request.Content).To(Equal("hello"))
			Expect(events[0].Result).To(Equal(event.Result))
		})
	})

	Describe("AllEvents", func() {
		It("Should return nothing for a missing directory", func() {
			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(BeEmpty())
		})

		It("Should skip unreadable and unknown files", func() {
			logger.EXPECT().Error(gomock.Any(), gomock.Any()).Times(1)

			Expect(store.StartSession()).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tempDir, "broken.event"), []byte("{"), 0644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tempDir, "other.event"), []byte(`{"protocol":"x"}`), 0644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0644)).To(Succeed())

			events, err := store.AllEvents()
			Expect(err).ToNot(HaveOccurred())
			Expect(events).To(HaveLen(1))
		})
	})

	Describe("StopSession", func() {
		It("Should summarize events across stores sharing a directory", func() {
			Expect(store.StartSession()).To(Succeed())

			other, err := NewDirectorySessionStore(tempDir, logger)
			Expect(err).ToNot(HaveOccurred())

			changed := model.NewTransactionEvent(model.FileTypeName, "/a")
			changed.Changed = true
			Expect(store.RecordEvent(changed)).To(Succeed())
			Expect(other.RecordEvent(model.NewTransactionEvent(model.FileTypeName, "/b"))).To(Succeed())

			summary, err := other.StopSession(false)
			Expect(err).ToNot(HaveOccurred())
			Expect(summary.TotalResources).To(Equal(2))
			Expect(summary.ChangedResources).To(Equal(1))
			Expect(summary.StableResources).To(Equal(1))
			Expect(tempDir).To(BeADirectory())

			_, err = store.StopSession(true)
			Expect(err).ToNot(HaveOccurred())
			Expect(tempDir).ToNot(BeADirectory())
		})
	})
})
