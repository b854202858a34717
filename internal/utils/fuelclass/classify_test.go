package fuelclass

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	var defaultConfig Config

	BeforeEach(func() {
		defaultConfig = DefaultConfig()
	})

	Context("with the default config", func() {
		It("should treat none as unmetered", func() {
			Expect(Classify("none", defaultConfig)).To(Equal(ClassUnmetered))
		})

		It("should treat an empty fuel name as unmetered", func() {
			Expect(Classify("", defaultConfig)).To(Equal(ClassUnmetered))
		})

		It("should treat renewable as renewable", func() {
			Expect(Classify("renewable", defaultConfig)).To(Equal(ClassRenewable))
		})

		It("should price any other fuel", func() {
			Expect(Classify("coal", defaultConfig)).To(Equal(ClassPriced))
			Expect(IsPriced("natural gas", defaultConfig)).To(BeTrue())
		})

		It("should match case-sensitively", func() {
			Expect(Classify("None", defaultConfig)).To(Equal(ClassPriced))
		})
	})

	Context("with a zero config", func() {
		It("should fall back to the default lists", func() {
			Expect(Classify("none", Config{})).To(Equal(ClassUnmetered))
			Expect(IsPriced("renewable", Config{})).To(BeFalse())
		})
	})

	Context("with a custom config", func() {
		It("should use only the configured values", func() {
			config := Config{
				UnmeteredValues: []string{"-"},
				RenewableValues: []string{"wind", "solar"},
			}
			Expect(Classify("solar", config)).To(Equal(ClassRenewable))
			Expect(Classify("-", config)).To(Equal(ClassUnmetered))
			Expect(Classify("none", config)).To(Equal(ClassPriced))
		})
	})
})

var _ = Describe("DefaultConfig", func() {
	It("should return the standard configuration", func() {
		config := DefaultConfig()
		Expect(config.UnmeteredValues).To(Equal([]string{"none", ""}))
		Expect(config.RenewableValues).To(Equal([]string{"renewable"}))
		Expect(config.IsZero()).To(BeFalse())
	})
})
