package vm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AumyF/comet2/vm"
)

var _ = Describe("one-word LD (register copy)", func() {
	DescribeTable("copies r2 into r1 and sets flags from the copied value",
		func(r2Value uint16, wantSF, wantZF bool) {
			m, err := vm.Load(words(0x1412)) // LD r1,r2
			Expect(err).NotTo(HaveOccurred())
			m.Registers().Write(1, 0x1234)
			m.Registers().Write(2, r2Value)

			_, err = m.Step()
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Registers().Read(1)).To(Equal(r2Value))
			Expect(m.Flags().OF).To(BeFalse())
			Expect(m.Flags().SF).To(Equal(wantSF))
			Expect(m.Flags().ZF).To(Equal(wantZF))
		},
		Entry("positive value", uint16(0x00F0), false, false),
		Entry("negative (sign bit set) value", uint16(0x8000), true, false),
		Entry("zero value", uint16(0x0000), false, true),
	)
})

var _ = Describe("ST", func() {
	It("stores the register's value at the effective address and leaves flags alone", func() {
		m, err := vm.Load(words(0x1110, 0x0300)) // ST r1,a(x=0)
		Expect(err).NotTo(HaveOccurred())
		m.Registers().Write(1, 0xBEEF)

		_, err = m.Step() // latch
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step() // consume operand, store
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Memory().Read(0x0300)).To(Equal(uint16(0xBEEF)))
		Expect(m.Flags()).To(Equal(vm.Flags{}))
	})
})

var _ = Describe("LAD", func() {
	It("loads the effective address itself, not memory contents", func() {
		m, err := vm.Load(words(0x1210, 0x0050)) // LAD r1,a(x=0)
		Expect(err).NotTo(HaveOccurred())
		m.Memory().Write(0x0050, 0xDEAD) // must be ignored: LAD loads the address

		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Registers().Read(1)).To(Equal(uint16(0x0050)))
	})

	It("adds the index register's contribution to the effective address", func() {
		m, err := vm.Load(words(0x1212, 0x0050)) // LAD r1,a(x=2)
		Expect(err).NotTo(HaveOccurred())
		m.Registers().Write(2, 0x0005)

		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Registers().Read(1)).To(Equal(uint16(0x0055)))
	})
})

var _ = Describe("two-word bitwise ops (AND/OR/XOR)", func() {
	DescribeTable("combines the register with memory at the effective address and clears OF",
		func(firstWord uint16, regValue, memValue, wantResult uint16, wantSF, wantZF bool) {
			m, err := vm.Load(words(firstWord, 0x0300))
			Expect(err).NotTo(HaveOccurred())
			m.Registers().Write(1, regValue)
			m.Memory().Write(0x0300, memValue)

			_, err = m.Step() // latch
			Expect(err).NotTo(HaveOccurred())
			_, err = m.Step() // consume operand, execute
			Expect(err).NotTo(HaveOccurred())

			Expect(m.Registers().Read(1)).To(Equal(wantResult))
			Expect(m.Flags().OF).To(BeFalse())
			Expect(m.Flags().SF).To(Equal(wantSF))
			Expect(m.Flags().ZF).To(Equal(wantZF))
		},
		Entry("AND", uint16(0x3010), uint16(0xFF0F), uint16(0x0FF0), uint16(0x0F00), false, false),
		Entry("OR", uint16(0x3110), uint16(0x8000), uint16(0x0001), uint16(0x8001), true, false),
		Entry("XOR", uint16(0x3210), uint16(0xFFFF), uint16(0xFFFF), uint16(0x0000), false, true),
	)
})

var _ = Describe("two-word compares (CPA/CPL)", func() {
	It("CPA compares signed and does not write the register", func() {
		m, err := vm.Load(words(0x4010, 0x0300)) // CPA r1,a(x=0)
		Expect(err).NotTo(HaveOccurred())
		m.Registers().Write(1, 0xFFFF) // -1
		m.Memory().Write(0x0300, 0x0001)

		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Registers().Read(1)).To(Equal(uint16(0xFFFF)))
		Expect(m.Flags().OF).To(BeFalse())
		Expect(m.Flags().SF).To(BeTrue()) // -1 < 1
		Expect(m.Flags().ZF).To(BeFalse())
	})

	It("CPL compares unsigned", func() {
		m, err := vm.Load(words(0x4110, 0x0300)) // CPL r1,a(x=0)
		Expect(err).NotTo(HaveOccurred())
		m.Registers().Write(1, 0x0001)
		m.Memory().Write(0x0300, 0xFFFF) // 65535 unsigned, not -1

		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Flags().OF).To(BeFalse())
		Expect(m.Flags().SF).To(BeTrue()) // 1 < 65535 unsigned
		Expect(m.Flags().ZF).To(BeFalse())
	})
})

var _ = Describe("conditional and unconditional jumps", func() {
	It("JMI branches when SF is set", func() {
		m, err := vm.Load(words(0x2412, 0x6100, 0x0300)) // ADDA r1,r2 ; JMI a(x=0)
		Expect(err).NotTo(HaveOccurred())
		m.Registers().Write(1, 0x7FFF)
		m.Registers().Write(2, 0x0001)

		_, err = m.Step() // ADDA -> 0x8000, SF=true
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Flags().SF).To(BeTrue())

		_, err = m.Step() // latch JMI
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step() // branch
		Expect(err).NotTo(HaveOccurred())

		Expect(m.PR()).To(Equal(uint16(0x0300)))
	})

	It("JNZ branches when ZF is clear", func() {
		m, err := vm.Load(words(0x6200, 0x0300)) // JNZ a(x=0); initial ZF=false
		Expect(err).NotTo(HaveOccurred())

		_, err = m.Step() // latch
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step() // branch
		Expect(err).NotTo(HaveOccurred())

		Expect(m.PR()).To(Equal(uint16(0x0300)))
	})

	It("JUMP always branches", func() {
		m, err := vm.Load(words(0x6400, 0x0300)) // JUMP a(x=0)
		Expect(err).NotTo(HaveOccurred())

		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())

		Expect(m.PR()).To(Equal(uint16(0x0300)))
	})

	It("JPL branches when SF and ZF are both clear", func() {
		m, err := vm.Load(words(0x6500, 0x0300)) // JPL a(x=0); initial SF=ZF=false
		Expect(err).NotTo(HaveOccurred())

		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step()
		Expect(err).NotTo(HaveOccurred())

		Expect(m.PR()).To(Equal(uint16(0x0300)))
	})

	It("JPL does not branch when ZF is set", func() {
		m, err := vm.Load(words(0x4401, 0x6500, 0x0300)) // CPA r0,r1 (both 0 -> ZF=true) ; JPL
		Expect(err).NotTo(HaveOccurred())

		_, err = m.Step() // CPA
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Flags().ZF).To(BeTrue())

		_, err = m.Step() // latch JPL
		Expect(err).NotTo(HaveOccurred())
		prBeforeOperand := m.PR()

		_, err = m.Step() // consume operand, no branch
		Expect(err).NotTo(HaveOccurred())

		Expect(m.PR()).To(Equal(prBeforeOperand + 1))
	})

	It("JOV branches when OF is set", func() {
		m, err := vm.Load(words(0x2412, 0x6600, 0x0300)) // ADDA r1,r2 overflow ; JOV a(x=0)
		Expect(err).NotTo(HaveOccurred())
		m.Registers().Write(1, 0x7FFF)
		m.Registers().Write(2, 0x0001)

		_, err = m.Step() // ADDA overflows, OF=true
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Flags().OF).To(BeTrue())

		_, err = m.Step() // latch JOV
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Step() // branch
		Expect(err).NotTo(HaveOccurred())

		Expect(m.PR()).To(Equal(uint16(0x0300)))
	})
})

