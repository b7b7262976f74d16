package matting

import (
	"context"
	"errors"
	"image"
	"image/draw"
)

// ctxCheckEvery: как часто flood fill сверяется с контекстом.
const ctxCheckEvery = 1 << 14

var errEmptyImage = errors.New("empty image")

// ColorKeyRemover: встроенный бэкенд без внешних зависимостей. Цвет фона
// оценивается по рамке изображения, затем заливка от краёв делает прозрачными
// все связанные с рамкой пиксели, близкие к этому цвету.
type ColorKeyRemover struct {
	Tolerance int
}

// NewColorKeyRemover создаёт бэкенд с допуском по каждому каналу (0..255).
func NewColorKeyRemover(tolerance int) *ColorKeyRemover {
	return &ColorKeyRemover{Tolerance: tolerance}
}

var _ Remover = (*ColorKeyRemover)(nil)

// Remove возвращает *image.NRGBA с обнулённой альфой у пикселей фона.
func (c *ColorKeyRemover) Remove(ctx context.Context, src image.Image) (image.Image, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, errEmptyImage
	}

	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	bg := borderColor(dst)
	visited := make([]bool, w*h)
	stack := make([]int, 0, 2*(w+h))

	push := func(x, y int) {
		i := y*w + x
		if visited[i] {
			return
		}
		visited[i] = true
		if c.matches(dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y):], bg) {
			stack = append(stack, i)
		}
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for n := 0; len(stack) > 0; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w

		off := dst.PixOffset(b.Min.X+x, b.Min.Y+y)
		dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = 0, 0, 0, 0

		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}

	return dst, nil
}

// matches сравнивает пиксель (RGBA без премультипликации) с цветом фона.
// Уже прозрачные пиксели всегда считаются фоном.
func (c *ColorKeyRemover) matches(px []uint8, bg [3]uint8) bool {
	if px[3] == 0 {
		return true
	}
	for ch := 0; ch < 3; ch++ {
		d := int(px[ch]) - int(bg[ch])
		if d < 0 {
			d = -d
		}
		if d > c.Tolerance {
			return false
		}
	}
	return true
}

// borderColor выбирает самый частый цвет рамки (квантованный до 4 бит на канал)
// и усредняет точные значения пикселей этой корзины.
func borderColor(img *image.NRGBA) [3]uint8 {
	b := img.Bounds()

	type bucket struct {
		count   int
		r, g, b int
	}
	buckets := make(map[uint16]*bucket)
	var best *bucket

	add := func(x, y int) {
		px := img.Pix[img.PixOffset(x, y):]
		if px[3] == 0 {
			return
		}
		key := uint16(px[0]>>4)<<8 | uint16(px[1]>>4)<<4 | uint16(px[2]>>4)
		bk := buckets[key]
		if bk == nil {
			bk = &bucket{}
			buckets[key] = bk
		}
		bk.count++
		bk.r += int(px[0])
		bk.g += int(px[1])
		bk.b += int(px[2])
		if best == nil || bk.count > best.count {
			best = bk
		}
	}

	for x := b.Min.X; x < b.Max.X; x++ {
		add(x, b.Min.Y)
		add(x, b.Max.Y-1)
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		add(b.Min.X, y)
		add(b.Max.X-1, y)
	}

	if best == nil {
		return [3]uint8{}
	}
	return [3]uint8{
		uint8(best.r / best.count),
		uint8(best.g / best.count),
		uint8(best.b / best.count),
	}
}
