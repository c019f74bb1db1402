// Package graph 以句柄为键的二维场景图。
package graph

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/geom"
	"github.com/zooyer/cadimport/utils"
)

// ErrDuplicateID 同一张图中句柄重复
var ErrDuplicateID = errors.New("duplicate id")

// Node 图中的节点，块容器的 Shape 为空
type Node struct {
	ID       string
	Name     string
	Shape    geom.Shape
	Parent   *Node
	Children []*Node
}

type Graph struct {
	root  *Node
	index map[string]*Node
}

func New() *Graph {
	return &Graph{
		root:  &Node{},
		index: make(map[string]*Node),
	}
}

// Root 根节点，本身不属于任何实体
func (g *Graph) Root() *Node {
	return g.root
}

// Add 在 parent 下追加节点，parent 为空时挂到根节点
func (g *Graph) Add(parent *Node, id, name string, shape geom.Shape) (*Node, error) {
	if _, ok := g.index[id]; ok {
		return nil, errors.Wrapf(ErrDuplicateID, "%q", id)
	}
	if parent == nil {
		parent = g.root
	}

	node := &Node{ID: id, Name: name, Shape: shape, Parent: parent}
	parent.Children = append(parent.Children, node)
	g.index[id] = node

	return node, nil
}

func (g *Graph) Get(id string) (*Node, bool) {
	node, ok := g.index[id]
	return node, ok
}

// Len 节点数量（不含根节点）
func (g *Graph) Len() int {
	return len(g.index)
}

// Walk 深度优先前序遍历，fn 返回 false 时终止
func (g *Graph) Walk(fn func(node *Node) bool) {
	var walk func(node *Node) bool
	walk = func(node *Node) bool {
		for _, child := range node.Children {
			if !fn(child) || !walk(child) {
				return false
			}
		}
		return true
	}
	walk(g.root)
}

// Shapes 按遍历顺序返回全部图形
func (g *Graph) Shapes() []geom.Shape {
	var shapes []geom.Shape
	g.Walk(func(node *Node) bool {
		if node.Shape != nil {
			shapes = append(shapes, node.Shape)
		}
		return true
	})
	return shapes
}

// Box 全部图形的包围盒，图为空时 ok 为 false
func (g *Graph) Box() (box sdf.Box2, ok bool) {
	var points []v2.Vec
	for _, shape := range g.Shapes() {
		points = append(points, shape.Points()...)
	}
	return utils.BoxOf(points)
}

// Transform 对全部图形做仿射变换
func (g *Graph) Transform(m sdf.M33) {
	for _, shape := range g.Shapes() {
		shape.Transform(m)
	}
}

func (g *Graph) Translate(v v2.Vec) {
	g.Transform(sdf.Translate2d(v))
}

// RotateZ 绕原点旋转，单位度
func (g *Graph) RotateZ(deg float64) {
	g.Transform(sdf.Rotate2d(deg * math.Pi / 180))
}

func (g *Graph) Scale(v v2.Vec) {
	g.Transform(sdf.Scale2d(v))
}

// MirrorX 以包围盒中心为轴左右翻转
func (g *Graph) MirrorX() {
	g.mirror(v2.Vec{X: -1, Y: 1})
}

// MirrorY 以包围盒中心为轴上下翻转
func (g *Graph) MirrorY() {
	g.mirror(v2.Vec{X: 1, Y: -1})
}

func (g *Graph) mirror(scale v2.Vec) {
	box, ok := g.Box()
	if !ok {
		return
	}
	center := box.Min.Add(box.Max).MulScalar(0.5)
	g.Transform(sdf.Translate2d(center).Mul(sdf.Scale2d(scale)).Mul(sdf.Translate2d(center.MulScalar(-1))))
}
