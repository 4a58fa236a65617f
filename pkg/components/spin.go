package components

// SpinComponent 绕 Y 轴匀速自转（地球、云层、旅行者）
type SpinComponent struct {
	// Rate 角速度（弧度/秒），负值为反向
	Rate float64
}
