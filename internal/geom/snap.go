package geom

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// snapcalc returns the offset that moves the span [n0, n1) onto the nearer
// of the edges e0 and e1, or 0 if neither is closer than dist.
func snapcalc(n0, n1, e0, e1, dist int) int {
	var s0, s1 int
	if d := e0 - n0; d != 0 && abs(d) < dist {
		s0 = d
	}
	if d := e1 - n1; d != 0 && abs(d) < dist {
		s1 = d
	}
	switch {
	case s0 != 0 && s1 != 0:
		if abs(s1) < abs(s0) {
			return s1
		}
		return s0
	case s0 != 0:
		return s0
	}
	return s1
}

// Snap moves the outer rectangle r so that an edge lying within dist pixels
// of an edge of area lines up with it.
func Snap(r, area Rect, dist int) Rect {
	if dist <= 0 {
		return r
	}
	r.X += snapcalc(r.X, r.Right(), area.X, area.Right(), dist)
	r.Y += snapcalc(r.Y, r.Bottom(), area.Y, area.Bottom(), dist)
	return r
}
