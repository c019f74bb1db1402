package utils

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoxOf 计算二维点集的包围盒，点集为空时 ok 为 false
func BoxOf(points []v2.Vec) (box sdf.Box2, ok bool) {
	if len(points) == 0 {
		return
	}
	box = sdf.Box2{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box, true
}

// BoxOf3 计算三维点集的包围盒，点集为空时 ok 为 false
func BoxOf3(points []v3.Vec) (box sdf.Box3, ok bool) {
	if len(points) == 0 {
		return
	}
	box = sdf.Box3{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box, true
}

// MergeBoxes 合并重叠（或间距不超过 gap）的矩形
func MergeBoxes(boxes []sdf.Box2, gap float64) []sdf.Box2 {
	if len(boxes) < 2 {
		return boxes
	}

	for {
		changed := false
		var merged []sdf.Box2
		visited := make([]bool, len(boxes))
		for i := 0; i < len(boxes); i++ {
			if visited[i] {
				continue
			}
			curr := boxes[i]
			visited[i] = true
			for j := i + 1; j < len(boxes); j++ {
				if !visited[j] && !IsSeparate(curr, boxes[j], gap) {
					curr = curr.Extend(boxes[j])
					visited[j], changed = true, true
				}
			}
			merged = append(merged, curr)
		}
		boxes = merged
		if !changed {
			break
		}
	}

	return boxes
}

// IsSeparate 判断两个 Box 是否完全分离
func IsSeparate(a, b sdf.Box2, gap float64) bool {
	return a.Max.X+gap < b.Min.X || a.Min.X-gap > b.Max.X ||
		a.Max.Y+gap < b.Min.Y || a.Min.Y-gap > b.Max.Y
}

func InBox(box sdf.Box2, point v2.Vec) bool {
	if point.X >= box.Min.X && point.X <= box.Max.X && point.Y >= box.Min.Y && point.Y <= box.Max.Y {
		return true
	}

	return false
}
