package graph

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("normalizeVariables", func() {
	It("turns whole numbers into ints at any depth", func() {
		vars := normalizeVariables(map[string]interface{}{
			"age":    float64(5),
			"ages":   []interface{}{float64(30), float64(40)},
			"nested": map[string]interface{}{"duration": float64(30)},
			"name":   "Leo",
		})
		Expect(vars).Should(Equal(map[string]interface{}{
			"age":    5,
			"ages":   []interface{}{30, 40},
			"nested": map[string]interface{}{"duration": 30},
			"name":   "Leo",
		}))
	})

	It("leaves fractions and out of range numbers alone", func() {
		vars := normalizeVariables(map[string]interface{}{
			"half": 5.5,
			"huge": float64(1 << 40),
		})
		Expect(vars).Should(Equal(map[string]interface{}{
			"half": 5.5,
			"huge": float64(1 << 40),
		}))
	})

	It("accepts no variables", func() {
		Expect(normalizeVariables(nil)).Should(BeNil())
	})
})
