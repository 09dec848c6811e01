package plenary

// aFamily groups typeAErr and its "subclass" typeASubErr.
type aFamily interface {
	error
	familyA()
}

type typeAErr struct{ msg string }

func (e *typeAErr) Error() string { return "A: " + e.msg }
func (e *typeAErr) familyA()      {}

type typeASubErr struct{ typeAErr }

func (e *typeASubErr) Error() string { return "A-sub: " + e.msg }

type typeBErr struct{ msg string }

func (e *typeBErr) Error() string { return "B: " + e.msg }

type typeCErr struct{ msg string }

func (e *typeCErr) Error() string { return "C: " + e.msg }

func fail(err error) func() error {
	return func() error { return err }
}
