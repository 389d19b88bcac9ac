package cellrender

import "github.com/vibetunnel/termcore/internal/atlas"

// GPUBuffer is the external collaborator owning one instanced vertex
// buffer (the background array or the foreground array). Allocation and
// upload are out of scope here; this fixes the call boundary.
type GPUBuffer interface {
	Reallocate(sizeBytes int)
	Upload(byteOffset int, data []byte)
	DrawInstances(count int)
}

// GPUTextureUploader is the external collaborator that owns the atlas
// textures on the GPU.
type GPUTextureUploader interface {
	ReuploadFull(a atlas.Atlas)
	SubImage(a atlas.Atlas)
}

// uploadState tracks one array's GPU buffer bookkeeping: the last
// allocated size and the high-water mark of bytes already sent.
type uploadState struct {
	glSize    int
	glWritten int
}

// upload implements the GPU upload protocol for one cell array: grow the
// buffer if capacity increased, then send the unsent suffix, then draw.
func (u *uploadState) upload(buf GPUBuffer, cells []GPUCell) {
	if u.glSize < cap(cells) {
		buf.Reallocate(gpuCellSize * cap(cells))
		u.glSize = cap(cells)
		u.glWritten = 0
	}
	if u.glWritten < len(cells) {
		suffix := cells[u.glWritten:]
		buf.Upload(u.glWritten*gpuCellSize, EncodeCells(suffix))
		u.glWritten = len(cells)
	}
	buf.DrawInstances(len(cells))
}

// UploadAndDraw runs the GPU upload protocol for both arrays. Currently
// glWritten is reset to 0 at the top of every Rebuild, which makes the
// suffix-upload logic above degenerate into a full re-upload every frame;
// that is a flagged, not-yet-taken optimization, not a bug.
func (r *Rebuilder) UploadAndDraw(bg, fg GPUBuffer) {
	r.bgUpload.upload(bg, r.cellsBG)
	r.fgUpload.upload(fg, r.cells)
}

// FlushAtlases reuploads or sub-image-updates each modified atlas texture
// before a draw, then clears its flags.
func (r *Rebuilder) FlushAtlases(gpu GPUTextureUploader) {
	for _, a := range [...]atlas.Atlas{r.greyscale, r.color} {
		if a == nil || !a.Modified() {
			continue
		}
		if a.Resized() {
			gpu.ReuploadFull(a)
		} else {
			gpu.SubImage(a)
		}
		a.ClearFlags()
	}
}
