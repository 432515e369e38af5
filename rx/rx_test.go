package rx

import "testing"

func TestSymbolDerivative(t *testing.T) {
	expr := Symbol('A')
	if expr.Nullable() {
		t.Fatal("single symbol should not be nullable")
	}
	if !expr.Derivative('A').IsEpsilon() {
		t.Fatal("derivative w.r.t. matching char should be epsilon")
	}
	if !expr.Derivative('B').IsNull() {
		t.Fatal("derivative w.r.t. non-matching char should be null")
	}
}

func TestConcatDerivative(t *testing.T) {
	expr := Concat(Symbol('A'), Symbol('B'))
	if expr.Nullable() {
		t.Fatal("AB should not be nullable")
	}
	if !expr.Derivative('A').Equal(Symbol('B')) {
		t.Fatalf("derivative of AB w.r.t A should be B, got %s", expr.Derivative('A'))
	}
	if !expr.Derivative('B').IsNull() {
		t.Fatal("derivative of AB w.r.t B should be null")
	}
}

func TestStarIsNullable(t *testing.T) {
	expr := Star(Symbol('A'))
	if !expr.Nullable() {
		t.Fatal("A* should be nullable")
	}
	d := expr.Derivative('A')
	if !d.Nullable() {
		t.Fatal("derivative of A* w.r.t A should still be nullable")
	}
}

func TestPlusRequiresOne(t *testing.T) {
	expr := Plus(Symbol('A'))
	if expr.Nullable() {
		t.Fatal("A+ should not be nullable")
	}
	if !expr.Derivative('A').Nullable() {
		t.Fatal("derivative of A+ w.r.t A should be nullable (A*)")
	}
}

func TestNotNotCollapses(t *testing.T) {
	expr := Symbol('A')
	if !Not(Not(expr)).Equal(expr) {
		t.Fatal("Not(Not(r)) should equal r")
	}
}

func TestNotSymbolsNormalizesToComplement(t *testing.T) {
	expr := Not(Symbol('A'))
	if !expr.Derivative('A').IsNull() {
		t.Fatal("complement of A should not match A")
	}
	if !expr.Derivative('B').Nullable() {
		t.Fatal("complement of A should match B")
	}
}

func TestStarEpsilonCollapses(t *testing.T) {
	if !Star(Epsilon()).Equal(Epsilon()) {
		t.Fatal("Star(epsilon) should equal epsilon")
	}
}

func TestConcatNullCollapses(t *testing.T) {
	if !Concat(Null(), Symbol('A')).IsNull() {
		t.Fatal("Concat(null, r) should be null")
	}
	if !Concat(Symbol('A'), Null()).IsNull() {
		t.Fatal("Concat(r, null) should be null")
	}
}

func TestAndIntersectionExample(t *testing.T) {
	// And( [A-Z]+ , .*A.* ) : never nullable, becomes nullable after an A.
	azPlus := Plus(SymbolRange('A', 'Z'))
	anyA := Concat(Star(Sigma()), Concat(Symbol('A'), Star(Sigma())))
	expr := And(azPlus, anyA)

	if expr.Nullable() {
		t.Fatal("expression should not be nullable before any input")
	}

	dA := expr.Derivative('A')
	if !dA.Nullable() {
		t.Fatal("derivative w.r.t A should be nullable")
	}

	dB := expr.Derivative('B')
	if dB.Nullable() {
		t.Fatal("derivative w.r.t B should not be nullable (no A seen yet)")
	}
}

func TestCharacterClassesCoverSigma(t *testing.T) {
	expr := Concat(Plus(SymbolRange('a', 'z')), Plus(SymbolRange('0', '9')))
	classes := expr.CharacterClasses()

	union := classes[0]
	for _, c := range classes[1:] {
		union = union.Union(c)
	}
	if !union.Equal(Alphabet()) {
		t.Fatalf("character classes do not cover sigma: %v", classes)
	}

	// Every pair of distinct classes must be disjoint.
	for i := range classes {
		for j := range classes {
			if i == j {
				continue
			}
			if !classes[i].Intersection(classes[j]).IsEmpty() {
				t.Fatalf("classes %d and %d overlap", i, j)
			}
		}
	}
}

func TestDisplayForm(t *testing.T) {
	expr := Concat(Symbol('A'), Star(Symbol('B')))
	if expr.String() != "([A].[B]*)" {
		t.Fatalf("unexpected display form: %s", expr.String())
	}
}
