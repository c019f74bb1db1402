package geom

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
)

// checkKnots 校验节点向量：长度为 n+degree+1，单调不减，定义域非空
func checkKnots(knots []float64, degree, n int) error {
	switch {
	case degree < 1:
		return errors.Wrapf(ErrDegenerate, "spline degree %d", degree)
	case n < degree+1:
		return errors.Wrapf(ErrDegenerate, "spline with %d control points of degree %d", n, degree)
	case len(knots) != n+degree+1:
		return errors.Wrapf(ErrDegenerate, "knot vector length %d, want %d", len(knots), n+degree+1)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return errors.Wrapf(ErrDegenerate, "knot vector decreases at %d", i)
		}
	}
	if knots[n] <= knots[degree] {
		return errors.Wrap(ErrDegenerate, "empty knot domain")
	}
	return nil
}

// findSpan 返回 knots[k] <= u < knots[k+1] 的 k，u 位于定义域末端时取最后一个非空区间
func findSpan(knots []float64, degree, n int, u float64) int {
	last := degree
	for k := degree; k < n; k++ {
		if knots[k] < knots[k+1] {
			if u >= knots[k] && u < knots[k+1] {
				return k
			}
			last = k
		}
	}
	return last
}

// basis 区间 k 上非零的 degree+1 个基函数值（Cox-de Boor 递推）
func basis(knots []float64, degree, k int, u float64) []float64 {
	n := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	n[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[k+1-j]
		right[j] = knots[k+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			temp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		n[j] = saved
	}

	return n
}

// params 每个非空节点区间均分 segments 段的参数值，含定义域终点
func params(knots []float64, degree, n, segments int) []float64 {
	var us []float64
	for k := degree; k < n; k++ {
		if knots[k+1] <= knots[k] {
			continue
		}
		for s := 0; s < segments; s++ {
			us = append(us, knots[k]+(knots[k+1]-knots[k])*float64(s)/float64(segments))
		}
	}
	return append(us, knots[n])
}

// Spline2 采样二维非有理 B 样条
func Spline2(ctrl []v2.Vec, knots []float64, degree, segments int) ([]v2.Vec, error) {
	if err := checkKnots(knots, degree, len(ctrl)); err != nil {
		return nil, err
	}

	var points []v2.Vec
	for _, u := range params(knots, degree, len(ctrl), segments) {
		k := findSpan(knots, degree, len(ctrl), u)
		var p v2.Vec
		for r, w := range basis(knots, degree, k, u) {
			p = p.Add(ctrl[k-degree+r].MulScalar(w))
		}
		points = append(points, p)
	}

	return points, nil
}

// Spline3 采样三维非有理 B 样条
func Spline3(ctrl []v3.Vec, knots []float64, degree, segments int) ([]v3.Vec, error) {
	if err := checkKnots(knots, degree, len(ctrl)); err != nil {
		return nil, err
	}

	var points []v3.Vec
	for _, u := range params(knots, degree, len(ctrl), segments) {
		k := findSpan(knots, degree, len(ctrl), u)
		var p v3.Vec
		for r, w := range basis(knots, degree, k, u) {
			p = p.Add(ctrl[k-degree+r].MulScalar(w))
		}
		points = append(points, p)
	}

	return points, nil
}
