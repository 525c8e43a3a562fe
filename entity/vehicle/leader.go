package vehicle

import (
	"git.fiblab.net/general/common/v2/mathutil"
)

// LeaderFinder 前车查询
type LeaderFinder interface {
	// 返回self的前车及沿行驶方向的间距，没有前车时返回nil与mathutil.INF
	Leader(self *Vehicle, vehicles []*Vehicle) (*Vehicle, float64)
}

// scanLeaderFinder 全量扫描查找前车，O(n)每车
// 说明：只比较行驶方向轴上的坐标，不区分车道与路径，
// 同方向行驶的任意车辆都可能是前车
type scanLeaderFinder struct{}

// NewScanLeaderFinder 创建全量扫描的前车查询
func NewScanLeaderFinder() LeaderFinder {
	return scanLeaderFinder{}
}

func (scanLeaderFinder) Leader(self *Vehicle, vehicles []*Vehicle) (*Vehicle, float64) {
	var leader *Vehicle
	gap := mathutil.INF
	for _, o := range vehicles {
		if o == self || o.Heading != self.Heading {
			continue
		}
		if d := axisGap(self, o); d > 0 && d < gap {
			leader, gap = o, d
		}
	}
	return leader, gap
}

// axisGap other在self前方的距离（沿self行驶方向），负数表示在后方
func axisGap(self, other *Vehicle) float64 {
	dx, dy := self.Heading.Unit()
	return (other.Position.X()-self.Position.X())*dx + (other.Position.Y()-self.Position.Y())*dy
}
