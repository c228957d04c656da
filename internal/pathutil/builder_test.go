package pathutil

import "testing"

func TestPathBuilder_Basic(t *testing.T) {
	p := &PathBuilder{}
	p.Push("contact_details")
	p.Push("email")

	if got, want := p.String(), "contact_details.email"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathBuilder_WithIndex(t *testing.T) {
	p := &PathBuilder{}
	p.Push("address")
	p.PushIndex(0)
	p.Push("place")

	if got, want := p.String(), "address[0].place"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathBuilder_RootIndex(t *testing.T) {
	p := &PathBuilder{}
	p.PushIndex(2)
	p.Push("value")

	if got, want := p.String(), "[2].value"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPathBuilder_PushPop(t *testing.T) {
	p := &PathBuilder{}
	p.Push("series")
	p.PushIndex(1)
	p.Push("name")
	p.Pop()
	p.Pop()
	p.PushIndex(2)
	p.Push("number")

	if got, want := p.String(), "series[2].number"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if p.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", p.Depth())
	}
}

func TestPathBuilder_Empty(t *testing.T) {
	p := &PathBuilder{}
	if got := p.String(); got != "" {
		t.Errorf("String() on empty = %q, want empty", got)
	}
	p.Pop() // must not panic
	if got := p.String(); got != "" {
		t.Errorf("String() after Pop on empty = %q, want empty", got)
	}
}

func TestPathBuilder_Child(t *testing.T) {
	p := &PathBuilder{}
	if got := p.Child("cnum"); got != "cnum" {
		t.Errorf("Child at root = %q, want %q", got, "cnum")
	}

	p.Push("series")
	p.PushIndex(0)
	if got, want := p.Child("name"), "series[0].name"; got != want {
		t.Errorf("Child() = %q, want %q", got, want)
	}
	if got, want := p.String(), "series[0]"; got != want {
		t.Errorf("Child must not modify builder: String() = %q, want %q", got, want)
	}
}

func TestPathBuilder_Reset(t *testing.T) {
	p := &PathBuilder{}
	p.Push("a")
	p.Push("b")
	p.Reset()

	if got := p.String(); got != "" {
		t.Errorf("String() after Reset = %q, want empty", got)
	}
	p.Push("c")
	if got := p.String(); got != "c" {
		t.Errorf("String() after Reset+Push = %q, want %q", got, "c")
	}
}

func TestPool_GetPut(t *testing.T) {
	p := Get()
	p.Push("titles")
	p.PushIndex(3)
	Put(p)

	p2 := Get()
	defer Put(p2)
	if got := p2.String(); got != "" {
		t.Errorf("pooled builder not reset: %q", got)
	}
}

func TestPool_PutNil(t *testing.T) {
	Put(nil) // must not panic
}
