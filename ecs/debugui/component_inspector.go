package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/chassis/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(world *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	archetype := world.ArchetypeOf(ci.selectedEntityId)
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %d is no longer live", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: index %d, generation %d", ci.selectedEntityId.Index(), ci.selectedEntityId.Generation()))
	imgui.Text(fmt.Sprintf("Archetype: %d", archetype.ID()))
	imgui.Separator()

	registry := world.Registry()
	for _, id := range archetype.Components() {
		info := registry.Info(id)
		component := world.GetComponent(ci.selectedEntityId, info.Type())
		if component == nil {
			continue
		}

		label := fmt.Sprintf("%s (%s)", info.Type().String(), info.Storage())
		if imgui.TreeNodeStr(label) {
			ci.renderComponent(component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws editable widgets for each field of the component.
// component is the *T returned by the store, so edits write straight into
// the live value.
func (ci *ComponentInspectorComponent) renderComponent(component any) {
	val := reflect.ValueOf(component).Elem()

	if val.Kind() != reflect.Struct {
		ci.renderValue(val.Type().String(), val)
		return
	}

	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		if !field.IsExported() {
			imgui.Text(fmt.Sprintf("%s: <unexported>", field.Name))
			continue
		}
		ci.renderValue(field.Name, val.Field(i))
	}
}

func (ci *ComponentInspectorComponent) renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Ptr:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		ci.renderValue(name, val.Elem())

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for i := 0; i < val.NumField(); i++ {
				field := val.Type().Field(i)
				if !field.IsExported() {
					continue
				}
				ci.renderValue(field.Name, val.Field(i))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
