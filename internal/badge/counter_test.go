package badge

import "testing"

func TestSubscribeReceivesCurrentValue(t *testing.T) {
	c := NewCounter()
	c.Set(3)

	var got []int
	c.Subscribe(func(v int) { got = append(got, v) })

	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected initial publish of 3, got %#v", got)
	}
}

func TestSetPublishesOnChangeOnly(t *testing.T) {
	c := NewCounter()
	var got []int
	c.Subscribe(func(v int) { got = append(got, v) })

	c.Set(2)
	c.Set(2)
	c.Set(0)

	want := []int{0, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("unexpected publishes: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected publishes: got=%#v want=%#v", got, want)
		}
	}
	if c.Get() != 0 {
		t.Fatalf("unexpected value: %d", c.Get())
	}
}
