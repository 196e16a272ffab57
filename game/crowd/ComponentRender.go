package crowd

// Render is an opaque bag of presentation hints for external renderers
// (billboards, health bars, ragdoll meshes). The simulation never reads it.
type Render struct {
	type_  string
	static bool
	scale  float64
	color  string
}

func (game CrowdGame) CastRender(data interface{}) *Render {
	return data.(*Render)
}

func (r Render) GetType() string {
	return r.type_
}

func (r Render) IsStatic() bool {
	return r.static
}

func (r Render) GetScale() float64 {
	return r.scale
}

func (r Render) GetColor() string {
	return r.color
}

func (r Render) Hints() map[string]interface{} {
	return map[string]interface{}{
		"scale": r.scale,
		"color": r.color,
	}
}
