package game

import (
	"log"

	"github.com/gonewx/scrollstory/pkg/chime"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 播放旅行者到达路标时的提示音
//   - 从 SettingsManager 读取开关和音量
//
// audioContext 为 nil 时（无音频设备 / 测试）所有播放调用直接返回 false。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *SettingsManager
	chimeCache      map[int][]byte // 路标序号 -> PCM
	players         []*audio.Player
}

// maxPlayers 同时保留的播放器数量，超出后复用最早的播放器
const maxPlayers = 8

// NewAudioManager 创建音频管理器
//
// 参数：
//   - audioContext: ebiten 音频上下文（采样率需为 chime.SampleRate），可为 nil
//   - sm: SettingsManager 实例，可为 nil
func NewAudioManager(audioContext *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		audioContext:    audioContext,
		settingsManager: sm,
		chimeCache:      make(map[int][]byte),
	}
}

// Enabled 是否应当播放音效
func (am *AudioManager) Enabled() bool {
	if am.audioContext == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	return true
}

// PlayWaypointChime 播放第 index 个路标的提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayWaypointChime(index int) bool {
	if !am.Enabled() {
		return false
	}

	pcm := am.chimePCM(index)
	var player *audio.Player
	if len(am.players) < maxPlayers {
		player = am.audioContext.NewPlayerFromBytes(pcm)
		am.players = append(am.players, player)
	} else {
		// 复用最早的播放器
		old := am.players[0]
		old.Pause()
		if err := old.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close player: %v", err)
		}
		player = am.audioContext.NewPlayerFromBytes(pcm)
		am.players = append(am.players[1:], player)
	}

	player.SetVolume(am.getSoundVolume())
	player.Play()
	return true
}

// chimePCM 返回缓存的 PCM，音量在播放器上设置
func (am *AudioManager) chimePCM(index int) []byte {
	if pcm, ok := am.chimeCache[index]; ok {
		return pcm
	}
	pcm := chime.RenderChime(chime.PitchFor(index), 1)
	am.chimeCache[index] = pcm
	return pcm
}

// getSoundVolume 返回当前音效音量
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager == nil {
		return DefaultSettings().SoundVolume
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// StopAll 停止所有提示音
func (am *AudioManager) StopAll() {
	for _, p := range am.players {
		p.Pause()
	}
}
