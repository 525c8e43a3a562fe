package entity

import (
	"github.com/pkg/errors"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownPair      = errors.New("unknown direction pair")
	ErrInvalidCategory  = errors.New("invalid vehicle category")
)

// Direction 车辆行驶方向（四个基本方向）
type Direction string

const (
	North Direction = "north"
	East  Direction = "east"
	South Direction = "south"
	West  Direction = "west"
)

// Directions 所有方向，顺序即RL状态向量中的顺序
var Directions = []Direction{North, East, South, West}

// ParseDirection 解析方向字符串
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if d.Index() < 0 {
		return "", errors.Wrapf(ErrUnknownDirection, "%q", s)
	}
	return d, nil
}

// Index 方向在Directions中的下标，未知方向返回-1
func (d Direction) Index() int {
	switch d {
	case North:
		return 0
	case East:
		return 1
	case South:
		return 2
	case West:
		return 3
	}
	return -1
}

// Pair 方向所属的方向对（受哪一组信号灯控制）
func (d Direction) Pair() DirectionPair {
	switch d {
	case North, South:
		return NorthSouth
	default:
		return EastWest
	}
}

// Unit 沿行驶方向前进一个单位时的坐标增量
// 说明：y轴向北为正
func (d Direction) Unit() (dx, dy float64) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// DirectionPair 路口的一组正交通行轴
type DirectionPair string

const (
	NorthSouth DirectionPair = "north-south"
	EastWest   DirectionPair = "east-west"
)

// Pairs 所有方向对
var Pairs = []DirectionPair{NorthSouth, EastWest}

// ParsePair 解析方向对字符串
func ParsePair(s string) (DirectionPair, error) {
	switch p := DirectionPair(s); p {
	case NorthSouth, EastWest:
		return p, nil
	}
	return "", errors.Wrapf(ErrUnknownPair, "%q", s)
}

// Orthogonal 与之正交的方向对
func (p DirectionPair) Orthogonal() DirectionPair {
	if p == NorthSouth {
		return EastWest
	}
	return NorthSouth
}

// Phase 信号灯相位
type Phase string

const (
	Green  Phase = "green"
	Yellow Phase = "yellow"
	Red    Phase = "red"
)

// Index 相位编码（green=0, yellow=1, red=2），用于RL状态
func (p Phase) Index() int {
	switch p {
	case Green:
		return 0
	case Yellow:
		return 1
	default:
		return 2
	}
}

// Next 固定周期中的下一个相位
func (p Phase) Next() Phase {
	switch p {
	case Green:
		return Yellow
	case Yellow:
		return Red
	default:
		return Green
	}
}

// Category 车辆类别
type Category string

const (
	Car        Category = "car"
	Truck      Category = "truck"
	Bus        Category = "bus"
	Motorcycle Category = "motorcycle"
	Emergency  Category = "emergency"
)

// Categories 所有类别，顺序即RL状态向量中的顺序
var Categories = []Category{Car, Truck, Bus, Motorcycle, Emergency}

// ParseCategory 解析车辆类别
// 返回：未知类别返回ErrInvalidCategory
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c.Index() < 0 {
		return "", errors.Wrapf(ErrInvalidCategory, "%q", s)
	}
	return c, nil
}

// Index 类别在Categories中的下标，未知类别返回-1
func (c Category) Index() int {
	for i, x := range Categories {
		if x == c {
			return i
		}
	}
	return -1
}

// SizeClass 车辆尺寸等级，由类别决定
type SizeClass string

const (
	Small  SizeClass = "small"
	Medium SizeClass = "medium"
	Large  SizeClass = "large"
)
