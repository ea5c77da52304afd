package main

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"mini-ra/internal/config"
	"mini-ra/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const fontPath = "assets/fonts/mono.ttf"

// Scene is a small showcase map: a star field, two teams of crystals, a
// masked unit with an additive halo, and a HUD overlay. It exists to push
// every draw path of the batcher each frame.
type Scene struct {
	renderer *graphics.Renderer
	sprites  *graphics.SpriteRenderer
	colors   *graphics.RgbaColorRenderer
	text     *graphics.TextRenderer
	viewport *graphics.Viewport

	builder  *graphics.SheetBuilder
	palettes *graphics.HardwarePalette
	cache    *graphics.SheetCache

	artSheet  *graphics.Sheet
	maskSheet *graphics.Sheet

	unit    *graphics.Sprite
	crystal *graphics.Sprite
	glow    *graphics.Sprite
	shadow  *graphics.Sprite
	banner  *graphics.Sprite

	allied *graphics.PaletteReference
	soviet *graphics.PaletteReference
	heat   *graphics.PaletteReference

	stars []graphics.Vertex
	flare *metaSprite

	pulse     *gween.Tween
	pulseUp   bool
	glowAlpha float32

	camTimer float64
	camRight bool

	depthPreview bool
	hudVisible   bool

	frames    int
	fps       int
	lastCheck time.Time
	lastStats graphics.FrameStats
}

func NewScene(renderer *graphics.Renderer, backend graphics.Backend, shader graphics.Shader) (*Scene, error) {
	width, height := config.GetWindowSize()

	s := &Scene{
		renderer:   renderer,
		viewport:   graphics.NewViewport(width, height),
		builder:    graphics.NewSheetBuilder(backend, config.GetSheetSize()),
		pulse:      gween.New(0.35, 1, 1.2, ease.InOutSine),
		pulseUp:    true,
		hudVisible: true,
		lastCheck:  time.Now(),
	}
	s.sprites = graphics.NewSpriteRenderer(renderer, shader)
	s.colors = graphics.NewRgbaColorRenderer(s.sprites)
	s.viewport.SetZoom(config.GetZoom())

	palettes, err := buildPalettes(backend)
	if err != nil {
		return nil, err
	}
	s.palettes = palettes
	if s.allied, err = palettes.Reference("allied"); err != nil {
		return nil, err
	}
	if s.soviet, err = palettes.Reference("soviet"); err != nil {
		return nil, err
	}
	if s.heat, err = palettes.Reference("heat"); err != nil {
		return nil, err
	}
	s.sprites.SetPalette(palettes)

	if err := s.buildArt(backend); err != nil {
		return nil, err
	}

	// Optional baked assets layered over the procedural art.
	s.cache = graphics.NewSheetCache(backend)
	if flare, err := loadMetaSprite(s.cache, palettes, "flare"); err != nil {
		slog.Debug("no flare sequence, skipping", "error", err)
	} else {
		s.flare = flare
	}
	// 80 stars keep the one-shot buffer under the smallest scratch size.
	s.stars = makeStarField(80, 1800, 900)

	// Sub-pixel zoom factors need the edge filter; integer zooms stay
	// pixel perfect without it.
	zoom := config.GetZoom()
	if zoom != float32(int(zoom)) {
		s.sprites.SetAntialiasingPixelsPerTexel(zoom)
	}

	if atlas, err := graphics.BuildFontAtlas(s.builder, fontPath, 14); err != nil {
		slog.Warn("font not available, text disabled", "path", fontPath, "error", err)
	} else {
		s.text = graphics.NewTextRenderer(atlas, s.sprites)
	}

	return s, nil
}

// buildArt generates the placeholder sheets and sprites. The unit keeps
// its color art and coverage mask on two parallel sheets to exercise
// secondary sampling.
func (s *Scene) buildArt(backend graphics.Backend) error {
	s.artSheet = graphics.NewSheet(backend, image.Pt(64, 64))
	s.maskSheet = graphics.NewSheet(backend, image.Pt(64, 64))
	s.artSheet.WriteRegion(indexedDiscImage(24, 15), image.Pt(1, 1))
	s.maskSheet.WriteRegion(maskDiscImage(24), image.Pt(1, 1))
	s.unit = graphics.NewSprite(s.artSheet, image.Rect(1, 1, 25, 25), mgl32.Vec3{-12, -12, 0}).
		WithSecondary(s.maskSheet)

	var err error
	if s.crystal, err = s.builder.Add(indexedDiamondImage(16, 15), mgl32.Vec3{-8, -8, 0}); err != nil {
		return err
	}

	if s.glow, err = s.builder.Add(glowImage(32), mgl32.Vec3{-16, -16, 0}); err != nil {
		return err
	}
	s.glow.Channel = graphics.ChannelRGBA
	s.glow.BlendMode = graphics.BlendAdditive

	if s.shadow, err = s.builder.Add(shadowImage(32, 12), mgl32.Vec3{-16, -6, 0}); err != nil {
		return err
	}
	s.shadow.Channel = graphics.ChannelRGBA
	s.shadow.BlendMode = graphics.BlendMultiply

	if s.banner, err = s.builder.Add(bannerImage(48, 32), mgl32.Vec3{0, 0, 0}); err != nil {
		return err
	}
	s.banner.Channel = graphics.ChannelRGBA
	s.banner.Size[2] = 12

	return nil
}

func (s *Scene) Update(dt float64) {
	s.viewport.Update(float32(dt))

	// Pan back and forth across the map every few seconds.
	s.camTimer += dt
	if s.camTimer > 6 {
		s.camTimer = 0
		target := float32(0)
		if !s.camRight {
			target = 300
		}
		s.camRight = !s.camRight
		s.viewport.ScrollTo(target, 0, 2.5, ease.InOutQuad)
	}

	if s.flare != nil {
		s.flare.update(float32(dt))
	}

	v, done := s.pulse.Update(float32(dt))
	s.glowAlpha = v
	if done {
		if s.pulseUp {
			s.pulse = gween.New(1, 0.35, 1.2, ease.InOutSine)
		} else {
			s.pulse = gween.New(0.35, 1, 1.2, ease.InOutSine)
		}
		s.pulseUp = !s.pulseUp
	}
}

func (s *Scene) Render() {
	s.renderer.BeginFrame()
	s.viewport.Apply(s.sprites)

	// Star field goes straight to the GPU before anything accumulates.
	_ = s.sprites.DrawVertexBuffer(s.stars, 0, len(s.stars), graphics.TriangleList, nil, graphics.BlendAdditive)

	// Ground
	s.colors.FillRect(-200, 430, 2200, 400, mgl32.Vec3{0.10, 0.16, 0.10}, 1)

	unitPos := mgl32.Vec3{450, 420, 0}
	rival := mgl32.Vec3{560, 450, 0}

	// Shadows first so the multiply pass darkens only the ground.
	s.sprites.DrawSpriteScaled(s.shadow, nil, mgl32.Vec3{unitPos[0], unitPos[1] + 30, 0}, 3)
	s.sprites.DrawSpriteScaled(s.shadow, nil, mgl32.Vec3{rival[0], rival[1] + 30, 0}, 3)

	// Crystal fields, one row per team.
	for i := 0; i < 5; i++ {
		x := float32(120 + i*70)
		s.sprites.DrawSprite(s.crystal, s.allied, mgl32.Vec3{x, 500, 0})
		s.sprites.DrawSpriteScaled(s.crystal, s.soviet, mgl32.Vec3{x + 35, 545, 0}, 1.5)
	}
	s.sprites.DrawSpriteTinted(s.crystal, s.allied, mgl32.Vec3{85, 500, 0}, mgl32.Vec3{0.6, 0.6, 0.6}, 1)

	s.sprites.DrawSpriteScaled(s.unit, s.allied, unitPos, 3)
	s.sprites.DrawSpriteScaled(s.unit, s.soviet, rival, 3)

	if s.flare != nil {
		s.sprites.DrawSprite(s.flare.current(), s.flare.palette, mgl32.Vec3{320, 360, 0})
	}

	// Additive halo pulsing over the allied unit.
	s.sprites.DrawSpriteScaledTinted(s.glow, nil, unitPos, 3, mgl32.Vec3{0.6, 0.8, 1}, s.glowAlpha)

	// Banners: plain, stretched, and leaned across explicit corners. The
	// heat palette remaps the middle one even though it carries RGBA.
	s.sprites.DrawSprite(s.banner, nil, mgl32.Vec3{640, 180, 0})
	s.sprites.DrawSpriteStretchedTinted(s.banner, s.heat, mgl32.Vec3{640, 230, 0}, mgl32.Vec3{1.5, 0.8, 1}, mgl32.Vec3{1, 1, 1}, 0.9)
	s.sprites.DrawSpriteQuad(s.banner, nil,
		mgl32.Vec3{720, 300, 0},
		mgl32.Vec3{770, 310, 6},
		mgl32.Vec3{766, 344, 6},
		mgl32.Vec3{716, 334, 0},
	)

	if s.hudVisible {
		s.drawHUD()
	}

	s.renderer.EndFrame()
	s.lastStats = s.renderer.Stats()

	s.frames++
	if time.Since(s.lastCheck) >= time.Second {
		s.fps = s.frames
		s.frames = 0
		s.lastCheck = time.Now()
	}
}

// drawHUD switches the batcher to screen space and overlays the frame
// counters. World geometry must be flushed before the transform changes.
func (s *Scene) drawHUD() {
	s.renderer.Flush()
	width, height := s.viewport.Size()
	s.sprites.SetViewportParams(width, height, 1, mgl32.Vec2{})

	s.colors.FillRect(4, 4, 252, 40, mgl32.Vec3{0, 0, 0}, 0.55)
	s.colors.DrawRect(4, 4, 252, 40, 1, mgl32.Vec3{0.7, 0.7, 0.7}, 0.9)

	if s.text != nil {
		line := fmt.Sprintf("fps %d\ndraws %d flushes %d verts %d",
			s.fps, s.lastStats.DrawCalls, s.lastStats.Flushes, s.lastStats.Vertices)
		s.text.Draw(line, 10, 20, mgl32.Vec3{1, 1, 1})
	}
}

func (s *Scene) Resize(width, height int) {
	s.viewport.SetSize(width, height)
}

func (s *Scene) ToggleDepthPreview() {
	s.depthPreview = !s.depthPreview
	s.sprites.SetDepthPreview(s.depthPreview, 24, 0)
}

func (s *Scene) ToggleHUD() {
	s.hudVisible = !s.hudVisible
}

// ShakeCamera kicks the viewport sideways and lets it spring back.
func (s *Scene) ShakeCamera() {
	scroll := s.viewport.Scroll()
	s.viewport.SetScroll(scroll.X()+14, scroll.Y())
	s.viewport.ScrollTo(scroll.X(), scroll.Y(), 0.6, ease.OutElastic)
}

func (s *Scene) Dispose() {
	s.builder.Dispose()
	s.palettes.Dispose()
	s.cache.Dispose()
	s.artSheet.Dispose()
	s.maskSheet.Dispose()
}
