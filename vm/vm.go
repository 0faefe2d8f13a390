package vm

const (
	// maxDataStack bounds |ds|: PUSH fails past this size.
	maxDataStack = 1000001
	// maxCallStack bounds |cs|: CALL fails past this size.
	maxCallStack = 100000
)

// Interrupt is the host callback signature: given an interrupt id and the
// current frame's argument values, it may return a Value to assign to ca.
// The bool return reports whether a value was produced; when false, ca is
// left untouched.
type Interrupt func(id uint8, args []Value) (Value, bool)

// VM holds all state for one Aoi virtual machine instance: the program
// counter, data/memory pointers, the frame-base index, the two
// general-purpose registers, the data stack, the call stack, sparse
// memory, and the host interrupt hook. A VM instance is owned by exactly
// one caller; nothing here is safe for concurrent use.
type VM struct {
	pc  uint32
	dp  uint32
	mp  uint32
	dsb uint32

	ca Value
	cb Value

	ds []Value
	cs []uint32

	mem *Memory

	interrupt Interrupt
}

// New constructs a VM with default-zeroed state and the given interrupt
// callback. Passing a nil callback is equivalent to DefaultInterrupt.
func New(interrupt Interrupt) *VM {
	if interrupt == nil {
		interrupt = DefaultInterrupt
	}
	return &VM{
		ca:        Default(),
		cb:        Default(),
		mem:       NewMemory(),
		interrupt: interrupt,
	}
}

// PC, DP, MP, DSB, CA, CB expose read-only snapshots of VM registers,
// primarily for tests and the CLI's inspection commands.
func (vm *VM) PC() uint32  { return vm.pc }
func (vm *VM) DP() uint32  { return vm.dp }
func (vm *VM) MP() uint32  { return vm.mp }
func (vm *VM) DSB() uint32 { return vm.dsb }
func (vm *VM) CA() Value   { return vm.ca }
func (vm *VM) CB() Value   { return vm.cb }

// DataStackLen reports the current |ds|.
func (vm *VM) DataStackLen() int { return len(vm.ds) }

// DataStackAt reads ds[i] directly, for tests and inspection tooling.
func (vm *VM) DataStackAt(i int) Value { return vm.ds[i] }

// Memory exposes the VM's sparse memory for direct inspection.
func (vm *VM) Memory() *Memory { return vm.mem }

// Push appends value to the data stack, reporting false if the stack is
// already at its bound rather than returning a Status, matching the
// original's bool-returning push used by test harnesses.
func (vm *VM) Push(value Value) bool {
	if len(vm.ds) > maxDataStack-1 {
		return false
	}
	vm.ds = append(vm.ds, value)
	return true
}

// Pop removes and returns the top of the data stack, reporting false if it
// was empty.
func (vm *VM) Pop() (Value, bool) {
	n := len(vm.ds)
	if n == 0 {
		return Value{}, false
	}
	v := vm.ds[n-1]
	vm.ds = vm.ds[:n-1]
	return v, true
}

// Peek returns the top of the data stack without removing it.
func (vm *VM) Peek() (Value, bool) {
	n := len(vm.ds)
	if n == 0 {
		return Value{}, false
	}
	return vm.ds[n-1], true
}

// Reset zeroes pc/dp/mp/dsb, resets ca/cb to Default(), and clears cs, ds,
// and mem.
func (vm *VM) Reset() {
	vm.pc, vm.dp, vm.mp, vm.dsb = 0, 0, 0, 0
	vm.ca, vm.cb = Default(), Default()
	vm.cs = nil
	vm.ds = nil
	vm.mem = NewMemory()
}

// Step executes the single instruction at pc: if pc is past the end of the
// program, return Exit; otherwise capture the current instruction, advance
// pc by one (the pre-increment every relative jump's encoding assumes),
// and dispatch.
func (vm *VM) Step(program []Instruction) Status {
	if vm.pc >= uint32(len(program)) {
		return StatusExit
	}
	cur := vm.pc
	vm.pc++
	return vm.execute(program[cur])
}

// Run repeats Step until it returns anything other than Ok, and returns
// that status.
func (vm *VM) Run(program []Instruction) Status {
	for {
		s := vm.Step(program)
		if s.Kind != Ok {
			return s
		}
	}
}

// StepTraced behaves like Step but first logs the about-to-execute
// instruction's disassembly through the package Logger, for the
// interactive step debugger and the CLI's --trace flag.
func (vm *VM) StepTraced(program []Instruction) Status {
	if vm.pc < uint32(len(program)) {
		Logger.Printf("%04d: %s", vm.pc, program[vm.pc])
	}
	return vm.Step(program)
}
