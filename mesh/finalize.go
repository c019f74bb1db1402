package mesh

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Weld 按位置合并三角形汤中的重合顶点，面法线与颜色保留
func Weld(faces []Face3D) Indexed {
	var (
		indexed Indexed
		index   = make(map[v3.Vec]int)
	)

	for _, face := range faces {
		var f IndexedFace
		for k, vertex := range face.Vertices {
			i, ok := index[vertex.Position]
			if !ok {
				i = len(indexed.Vertices)
				index[vertex.Position] = i
				indexed.Vertices = append(indexed.Vertices, vertex.Position)
			}
			f.Indices[k] = i
		}
		f.Normal, f.Fill = face.Normal, face.Fill
		indexed.Faces = append(indexed.Faces, f)
	}

	return indexed
}

func normalize(v v3.Vec) v3.Vec {
	if l := v.Length(); l > 0 {
		return v.MulScalar(1 / l)
	}
	return v3.Vec{}
}

// faceNormal 显式法线非零时直接使用，否则按右手定则计算
func faceNormal(face IndexedFace, vertices []v3.Vec) v3.Vec {
	if face.Normal != (v3.Vec{}) {
		return normalize(face.Normal)
	}
	a, b, c := vertices[face.Indices[0]], vertices[face.Indices[1]], vertices[face.Indices[2]]
	return normalize(b.Sub(a).Cross(c.Sub(a)))
}

type edgeKey [2]int

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Finalize 计算面法线、顶点法线，以及边界边、非流形边和二面角超过 AngleLimit 的折边
func Finalize(in Indexed, opts Options) ([]Face3D, []Line3D) {
	var (
		cosLimit = math.Cos(opts.AngleLimit * math.Pi / 180)
		normals  = make([]v3.Vec, len(in.Faces))
		incident = make([][]int, len(in.Vertices))
	)

	for i, face := range in.Faces {
		normals[i] = faceNormal(face, in.Vertices)
		for _, v := range face.Indices {
			incident[v] = append(incident[v], i)
		}
	}

	faces := make([]Face3D, len(in.Faces))
	for i, face := range in.Faces {
		f := Face3D{Normal: normals[i], Fill: face.Fill}
		for k, v := range face.Indices {
			normal := normals[i]
			if opts.VertexNormals {
				var sum v3.Vec
				for _, j := range incident[v] {
					if normals[j].Dot(normals[i]) >= cosLimit {
						sum = sum.Add(normals[j])
					}
				}
				if sum = normalize(sum); sum != (v3.Vec{}) {
					normal = sum
				}
			}
			f.Vertices[k] = Vertex3D{Position: in.Vertices[v], Normal: normal}
		}
		faces[i] = f
	}

	if !opts.Edges {
		return faces, nil
	}
	return faces, findEdges(in, normals, cosLimit)
}

// findEdges 按边首次出现的顺序输出
func findEdges(in Indexed, normals []v3.Vec, cosLimit float64) []Line3D {
	var (
		order []edgeKey
		first = make(map[edgeKey][2]int)
		owner = make(map[edgeKey][]int)
	)

	for i, face := range in.Faces {
		for k := range face.Indices {
			a, b := face.Indices[k], face.Indices[(k+1)%3]
			key := keyOf(a, b)
			if _, ok := owner[key]; !ok {
				order = append(order, key)
				first[key] = [2]int{a, b}
			}
			owner[key] = append(owner[key], i)
		}
	}

	var edges []Line3D
	for _, key := range order {
		faces := owner[key]
		keep := len(faces) != 2 || normals[faces[0]].Dot(normals[faces[1]]) < cosLimit
		if keep {
			ends := first[key]
			edges = append(edges, Line3D{A: in.Vertices[ends[0]], B: in.Vertices[ends[1]]})
		}
	}

	return edges
}
