package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"bus-viewer/lighting"
	"bus-viewer/scene"
	"bus-viewer/sim"
)

// EnvPrefix namespaces environment overrides, e.g. BUSVIEW_VIEWPORTS=4 or
// BUSVIEW_WINDOW_WIDTH=1920.
const EnvPrefix = "BUSVIEW"

var (
	ErrInvalidWindow    = errors.New("invalid window size")
	ErrInvalidViewports = errors.New("viewports must be 1 or 4")
	ErrInvalidRate      = errors.New("rates must be positive")
	ErrInvalidLighting  = errors.New("invalid lighting setting")
)

type WindowConfig struct {
	Width      int    `json:"width" mapstructure:"width"`
	Height     int    `json:"height" mapstructure:"height"`
	Title      string `json:"title" mapstructure:"title"`
	VSync      bool   `json:"vsync" mapstructure:"vsync"`
	Fullscreen bool   `json:"fullscreen" mapstructure:"fullscreen"`
}

type DriveConfig struct {
	Speed    float32 `json:"speed" mapstructure:"speed"`
	TurnRate float32 `json:"turnRate" mapstructure:"turnRate"`
}

type CameraConfig struct {
	MoveSpeed   float32 `json:"moveSpeed" mapstructure:"moveSpeed"`
	RotateSpeed float32 `json:"rotateSpeed" mapstructure:"rotateSpeed"`
}

type AnimationConfig struct {
	DoorRate float32 `json:"doorRate" mapstructure:"doorRate"`
	FanRate  float32 `json:"fanRate" mapstructure:"fanRate"`
}

type OrbitConfig struct {
	Rate   float32 `json:"rate" mapstructure:"rate"`
	Radius float32 `json:"radius" mapstructure:"radius"`
	Height float32 `json:"height" mapstructure:"height"`
}

type BirdEyeConfig struct {
	Height float32 `json:"height" mapstructure:"height"`
}

type LightingConfig struct {
	AmbientStrength  float32 `json:"ambientStrength" mapstructure:"ambientStrength"`
	SpecularStrength float32 `json:"specularStrength" mapstructure:"specularStrength"`
	Shininess        float32 `json:"shininess" mapstructure:"shininess"`
	K1               float32 `json:"k1" mapstructure:"k1"`
	K2               float32 `json:"k2" mapstructure:"k2"`
	SpotCutoff       float32 `json:"spotCutoff" mapstructure:"spotCutoff"`
	EmissiveStrength float32 `json:"emissiveStrength" mapstructure:"emissiveStrength"`
}

type RenderConfig struct {
	FrustumCulling bool `json:"frustumCulling" mapstructure:"frustumCulling"`
}

// Config is the full viewer configuration.
type Config struct {
	LogLevel  string          `json:"logLevel" mapstructure:"logLevel"`
	Window    WindowConfig    `json:"window" mapstructure:"window"`
	Viewports int             `json:"viewports" mapstructure:"viewports"`
	HUD       bool            `json:"hud" mapstructure:"hud"`
	Drive     DriveConfig     `json:"drive" mapstructure:"drive"`
	Camera    CameraConfig    `json:"camera" mapstructure:"camera"`
	Animation AnimationConfig `json:"animation" mapstructure:"animation"`
	Orbit     OrbitConfig     `json:"orbit" mapstructure:"orbit"`
	BirdEye   BirdEyeConfig   `json:"birdEye" mapstructure:"birdEye"`
	Lighting  LightingConfig  `json:"lighting" mapstructure:"lighting"`
	Render    RenderConfig    `json:"render" mapstructure:"render"`
}

func setDefaults() {
	drive := scene.DefaultDriveSettings()
	cam := scene.DefaultCameraSettings()
	light := lighting.DefaultSettings()

	viper.SetDefault("logLevel", "info")

	viper.SetDefault("window.width", 1280)
	viper.SetDefault("window.height", 720)
	viper.SetDefault("window.title", "Bus Viewer")
	viper.SetDefault("window.vsync", true)
	viper.SetDefault("window.fullscreen", false)

	viper.SetDefault("viewports", 1)
	viper.SetDefault("hud", true)

	viper.SetDefault("drive.speed", drive.Speed)
	viper.SetDefault("drive.turnRate", drive.TurnRate)

	viper.SetDefault("camera.moveSpeed", cam.MoveSpeed)
	viper.SetDefault("camera.rotateSpeed", cam.RotateSpeed)

	viper.SetDefault("animation.doorRate", scene.DoorRate)
	viper.SetDefault("animation.fanRate", scene.FanRate)

	viper.SetDefault("orbit.rate", cam.OrbitRate)
	viper.SetDefault("orbit.radius", cam.OrbitRadius)
	viper.SetDefault("orbit.height", cam.OrbitHeight)
	viper.SetDefault("birdEye.height", cam.BirdEyeHeight)

	viper.SetDefault("lighting.ambientStrength", light.AmbientStrength)
	viper.SetDefault("lighting.specularStrength", light.SpecularStrength)
	viper.SetDefault("lighting.shininess", light.Shininess)
	viper.SetDefault("lighting.k1", light.K1)
	viper.SetDefault("lighting.k2", light.K2)
	viper.SetDefault("lighting.spotCutoff", light.SpotCutoff)
	viper.SetDefault("lighting.emissiveStrength", light.EmissiveScale)

	viper.SetDefault("render.frustumCulling", false)
}

// Load sets default values, reads the config file at path when one is given
// and applies environment overrides. The file type follows its extension.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Viewports != 1 && c.Viewports != 4 {
		return fmt.Errorf("%w: got %d", ErrInvalidViewports, c.Viewports)
	}

	rates := []struct {
		key string
		v   float32
	}{
		{"drive.speed", c.Drive.Speed},
		{"drive.turnRate", c.Drive.TurnRate},
		{"camera.moveSpeed", c.Camera.MoveSpeed},
		{"camera.rotateSpeed", c.Camera.RotateSpeed},
		{"animation.doorRate", c.Animation.DoorRate},
		{"animation.fanRate", c.Animation.FanRate},
		{"orbit.rate", c.Orbit.Rate},
		{"orbit.radius", c.Orbit.Radius},
		{"birdEye.height", c.BirdEye.Height},
	}
	for _, r := range rates {
		if r.v <= 0 {
			return fmt.Errorf("%w: %s = %v", ErrInvalidRate, r.key, r.v)
		}
	}

	l := c.Lighting
	if l.SpotCutoff <= 0 || l.SpotCutoff >= 90 {
		return fmt.Errorf("%w: spotCutoff %v outside (0, 90)", ErrInvalidLighting, l.SpotCutoff)
	}
	if l.Shininess <= 0 {
		return fmt.Errorf("%w: shininess %v", ErrInvalidLighting, l.Shininess)
	}
	if l.AmbientStrength < 0 || l.SpecularStrength < 0 || l.K1 < 0 || l.K2 < 0 || l.EmissiveStrength < 0 {
		return fmt.Errorf("%w: negative coefficient", ErrInvalidLighting)
	}
	return nil
}

// SimSettings converts the configuration into simulation settings.
func (c *Config) SimSettings() sim.Settings {
	return sim.Settings{
		Drive: scene.DriveSettings{
			Speed:    c.Drive.Speed,
			TurnRate: c.Drive.TurnRate,
		},
		Camera: scene.CameraSettings{
			MoveSpeed:     c.Camera.MoveSpeed,
			RotateSpeed:   c.Camera.RotateSpeed,
			OrbitRate:     c.Orbit.Rate,
			OrbitRadius:   c.Orbit.Radius,
			OrbitHeight:   c.Orbit.Height,
			BirdEyeHeight: c.BirdEye.Height,
		},
		DoorRate: c.Animation.DoorRate,
		FanRate:  c.Animation.FanRate,
		Lighting: lighting.Settings{
			AmbientStrength:  c.Lighting.AmbientStrength,
			SpecularStrength: c.Lighting.SpecularStrength,
			Shininess:        c.Lighting.Shininess,
			K1:               c.Lighting.K1,
			K2:               c.Lighting.K2,
			SpotCutoff:       c.Lighting.SpotCutoff,
			EmissiveScale:    c.Lighting.EmissiveStrength,
		},
		Viewports: c.Viewports,
		ShowHUD:   c.HUD,
	}
}

