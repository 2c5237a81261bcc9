/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func almostEq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRectInsetAndContains(t *testing.T) {
	r := R(0, 0, 100, 100)
	in := r.Inset(10, 5)
	if !almostEq(in.X, 10) || !almostEq(in.Y, 5) || !almostEq(in.W, 80) || !almostEq(in.H, 90) {
		t.Fatalf("unexpected inset rect: %+v", in)
	}
	if !r.ContainsRect(in) {
		t.Fatalf("inset rect must be contained in original")
	}
	if r.ContainsRect(R(50, 50, 60, 10)) {
		t.Fatalf("overflowing rect reported as contained")
	}
}

func TestRectCenter(t *testing.T) {
	c := R(10, 20, 30, 40).Center()
	if !almostEq(c.X, 25) || !almostEq(c.Y, 40) {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestUnion(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(5, 5, 20, 2))
	if !almostEq(u.X, 0) || !almostEq(u.Y, 0) || !almostEq(u.W, 25) || !almostEq(u.H, 10) {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestRotateAroundPivot(t *testing.T) {
	pivot := Pt{10, 10}
	m := RotateAround(math.Pi/2, pivot)
	got := m.Apply(Pt{20, 10})
	if !almostEq(got.X, 10) || !almostEq(got.Y, 20) {
		t.Fatalf("rotate around pivot: got %+v", got)
	}
	// Pivot itself must be a fixed point.
	fp := m.Apply(pivot)
	if !almostEq(fp.X, pivot.X) || !almostEq(fp.Y, pivot.Y) {
		t.Fatalf("pivot moved: %+v", fp)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translate(3, -7).Mul(Rotate(0.4)).Mul(Scale(2, 2))
	inv := m.Invert()
	p := Pt{12.5, -4.25}
	back := inv.Apply(m.Apply(p))
	if !almostEq(back.X, p.X) || !almostEq(back.Y, p.Y) {
		t.Fatalf("invert round trip: got %+v want %+v", back, p)
	}
}
