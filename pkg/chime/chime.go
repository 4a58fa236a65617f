// Package chime 合成旅行者到达路标时的提示音
//
// 声音由正弦振荡器和指数衰减包络组成，输出 beep.Streamer。
// 桌面版通过 Render 转成 16 位 PCM 交给 ebiten/audio，终端版直接交给 beep/speaker。
package chime

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 统一采样率
const SampleRate = beep.SampleRate(48000)

// Duration 单个提示音时长
const Duration = 600 * time.Millisecond

const (
	attack = 8 * time.Millisecond
	// decayRate 指数衰减速度（1/秒）
	decayRate = 7.0
)

// pentatonic 五声音阶（A 大调），路标序号循环取音
var pentatonic = []float64{440.00, 493.88, 554.37, 659.25, 739.99}

// PitchFor 返回第 index 个路标的基频
//
// 每五个路标升高一个八度，最多升两个八度。
func PitchFor(index int) float64 {
	if index < 0 {
		index = 0
	}
	octave := min(index/len(pentatonic), 2)
	return pentatonic[index%len(pentatonic)] * math.Pow(2, float64(octave))
}

// sine 正弦振荡器
type sine struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// decay 线性起音 + 指数衰减
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	rate     beep.SampleRate
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if d.position < d.attack {
			vol = float64(d.position) / float64(d.attack)
		} else {
			t := float64(d.position-d.attack) / float64(d.rate)
			vol = math.Exp(-decayRate * t)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// volume 线性音量转换为 effects.Volume，0 表示静音
func volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// New 生成一个提示音
//
// 参数:
//   - freq: 基频（Hz）
//   - vol: 线性音量 [0,1]
//
// 返回:
//   - beep.Streamer: 长度为 Duration 的有限流
func New(freq, vol float64) beep.Streamer {
	voice := func(f, gain float64) beep.Streamer {
		return volume(&decay{
			streamer: &sine{freq: f, rate: SampleRate},
			attack:   SampleRate.N(attack),
			rate:     SampleRate,
		}, gain)
	}

	mixed := beep.Mix(
		voice(freq, 0.6),
		voice(freq*2, 0.25),
		voice(freq*3, 0.1),
	)
	return beep.Take(SampleRate.N(Duration), volume(mixed, vol))
}

// Render 把流渲染为 16 位小端立体声 PCM（ebiten/audio 的格式）
//
// 参数:
//   - s: 输入流，最多读取 maxSamples 个采样
//   - maxSamples: 采样数上限
func Render(s beep.Streamer, maxSamples int) []byte {
	out := make([]byte, 0, maxSamples*4)
	buf := make([][2]float64, 512)
	s = beep.Take(maxSamples, s)

	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				v := int16(math.Max(-1, math.Min(1, buf[i][c])) * math.MaxInt16)
				out = append(out, byte(v), byte(v>>8))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

// RenderChime 生成并渲染一个完整的提示音
func RenderChime(freq, vol float64) []byte {
	return Render(New(freq, vol), SampleRate.N(Duration))
}
