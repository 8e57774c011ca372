package rikudo_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/rikudo/pkg/rikudo"
)

func TestRikudo(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rikudo Suite")
}

var _ = Describe("ConstraintSet", func() {
	path := rikudo.Path{0, 2, 1, 3}

	It("should accept a path honouring every map", func() {
		c := rikudo.ConstraintSet{Maps: []rikudo.MapConstraint{{Step: 1, Vertex: 2}, {Step: 3, Vertex: 3}}}
		Expect(c.Satisfies(path, 4)).To(BeTrue())
	})

	It("should reject a path placing a pinned vertex elsewhere", func() {
		c := rikudo.ConstraintSet{Maps: []rikudo.MapConstraint{{Step: 1, Vertex: 1}}}
		Expect(c.Satisfies(path, 4)).To(BeFalse())
	})

	It("should accept diamonds in either orientation", func() {
		c := rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 2, V: 0}, {U: 1, V: 3}}}
		Expect(c.Satisfies(path, 4)).To(BeTrue())
	})

	It("should reject diamonds over non-consecutive vertices", func() {
		c := rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 0, V: 3}}}
		Expect(c.Satisfies(path, 4)).To(BeFalse())
	})

	It("should ignore the closing vertex of a cycle", func() {
		cycle := rikudo.Path{1, 2, 3, 0, 1}
		c := rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 0, V: 1}}}
		Expect(c.Satisfies(cycle, 4)).To(BeFalse())
		c = rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 0, V: 3}}}
		Expect(c.Satisfies(cycle, 4)).To(BeTrue())
	})

	It("should track pinned steps, vertices and diamonds", func() {
		c := rikudo.ConstraintSet{
			Maps:     []rikudo.MapConstraint{{Step: 2, Vertex: 5}},
			Diamonds: []rikudo.DiamondConstraint{{U: 1, V: 4}},
		}
		Expect(c.PinsStep(2)).To(BeTrue())
		Expect(c.PinsStep(5)).To(BeFalse())
		Expect(c.PinsVertex(5)).To(BeTrue())
		Expect(c.HasDiamond(rikudo.DiamondConstraint{U: 4, V: 1})).To(BeTrue())
		Expect(c.HasDiamond(rikudo.DiamondConstraint{U: 4, V: 2})).To(BeFalse())
		Expect(c.Len()).To(Equal(2))
	})

	It("should validate indices", func() {
		Expect(rikudo.ConstraintSet{Maps: []rikudo.MapConstraint{{Step: 4, Vertex: 0}}}.Validate(4)).ToNot(Succeed())
		Expect(rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 1, V: 1}}}.Validate(4)).ToNot(Succeed())
		Expect(rikudo.ConstraintSet{Diamonds: []rikudo.DiamondConstraint{{U: 1, V: 2}}}.Validate(4)).To(Succeed())
	})

	It("should clone without sharing storage", func() {
		c := rikudo.ConstraintSet{Maps: []rikudo.MapConstraint{{Step: 1, Vertex: 2}}}
		clone := c.Clone()
		clone.Maps[0].Vertex = 3
		Expect(c.Maps[0].Vertex).To(Equal(2))
	})
})

var _ = Describe("Solution", func() {
	const output = "0\n2\n1\n3\n-1\n2 2\n-1\n0 2\n-1\n"

	It("should write the path, the maps with 1-based steps and the diamonds", func() {
		var buf bytes.Buffer
		err := rikudo.WriteSolution(&buf, rikudo.Solution{
			Path: rikudo.Path{0, 2, 1, 3},
			Constraints: rikudo.ConstraintSet{
				Maps:     []rikudo.MapConstraint{{Step: 1, Vertex: 2}},
				Diamonds: []rikudo.DiamondConstraint{{U: 0, V: 2}},
			},
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal(output))
	})

	It("should write bare sentinels for an empty solution", func() {
		var buf bytes.Buffer
		Expect(rikudo.WriteSolution(&buf, rikudo.Solution{})).To(Succeed())
		Expect(buf.String()).To(Equal("-1\n-1\n-1\n"))
	})

	It("should read what it writes", func() {
		s, err := rikudo.ReadSolution(strings.NewReader(output))
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Path).To(Equal(rikudo.Path{0, 2, 1, 3}))
		Expect(s.Constraints.Maps).To(Equal([]rikudo.MapConstraint{{Step: 1, Vertex: 2}}))
		Expect(s.Constraints.Diamonds).To(Equal([]rikudo.DiamondConstraint{{U: 0, V: 2}}))
	})

	It("should fail on a truncated solution", func() {
		_, err := rikudo.ReadSolution(strings.NewReader("0\n2\n-1\n2"))
		Expect(err).To(HaveOccurred())
	})

	It("should fail on zero based steps", func() {
		_, err := rikudo.ReadSolution(strings.NewReader("0\n-1\n0 0\n-1\n-1\n"))
		Expect(err).To(HaveOccurred())
	})
})
