package service_test

import (
	"smartaccount_playground/internal/app/service"
	"smartaccount_playground/internal/domain/entity"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Draft", func() {
	var draft *service.Draft

	BeforeEach(func() {
		draft = service.NewDraft(entity.CallModeTransfer)
	})

	It("should start with one blank entry", func() {
		Expect(draft.Entries()).To(Equal([]entity.CallEntry{{TokenSymbol: "ETH"}}))
	})

	It("should refuse to remove the last entry", func() {
		_, err := draft.Remove(0)
		Expect(err).To(MatchError(service.ErrLastEntry))
	})

	It("should add, update and remove entries", func() {
		Expect(draft.Add()).To(HaveLen(2))

		entries, err := draft.Update(1, entity.FieldAmount, "2")
		Expect(err).NotTo(HaveOccurred())
		Expect(entries[1].Amount).To(Equal("2"))

		entries, err = draft.Remove(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Amount).To(Equal("2"))
	})

	It("should reject unknown fields and indexes", func() {
		_, err := draft.Update(0, "gas", "1")
		Expect(err).To(MatchError(service.ErrUnknownField))
		_, err = draft.Update(3, entity.FieldAmount, "1")
		Expect(err).To(MatchError(service.ErrEntryIndex))
	})

	It("should hand out copies", func() {
		entries := draft.Entries()
		entries[0].Amount = "99"
		Expect(draft.Entries()[0].Amount).To(BeEmpty())
	})

	It("should reset to a single blank entry", func() {
		draft.Add()
		Expect(draft.Reset()).To(Equal([]entity.CallEntry{entity.BlankEntry(entity.CallModeTransfer)}))
	})
})
