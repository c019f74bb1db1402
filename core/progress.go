package core

// Progress 进度回调，参数为 0-100 的百分比，nil 表示不关心进度
type Progress func(percent int)

// Set 上报进度，nil 时什么都不做
func (p Progress) Set(percent int) {
	if p != nil {
		p(percent)
	}
}

// Meter 对 Progress 做粗粒度节流：循环内只在跨过 Step 时上报
type Meter struct {
	Progress Progress
	Step     int
	last     int
	started  bool
}

// NewMeter 创建一个按 step 百分比节流的进度表
func NewMeter(p Progress, step int) *Meter {
	return &Meter{Progress: p, Step: step}
}

// Set 里程碑上报，值变化即上报
func (m *Meter) Set(percent int) {
	if m.started && percent == m.last {
		return
	}
	m.started, m.last = true, percent
	m.Progress.Set(percent)
}

// Tick 循环内上报，距上次不足 Step 时忽略
func (m *Meter) Tick(percent int) {
	if m.started && percent-m.last < m.Step {
		return
	}
	m.Set(percent)
}
