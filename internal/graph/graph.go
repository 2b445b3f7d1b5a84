// Package graph keeps the scene graph tree widget in step with the current
// scene and turns tree interactions into editor events.
package graph

import (
	"errors"

	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/scene"
)

const (
	MenuDelete = "delete"
	MenuClone  = "clone"
)

var icons = map[scene.Kind]string{
	scene.KindScene:           "scene",
	scene.KindMesh:            "mesh",
	scene.KindSubMesh:         "submesh",
	scene.KindLight:           "light",
	scene.KindCamera:          "camera",
	scene.KindParticleSystem:  "particles",
	scene.KindLensFlareSystem: "lensflare",
	scene.KindSound:           "sound",
	scene.KindReflectionProbe: "probe",
	scene.KindRenderTarget:    "rendertarget",
}

// Tool mirrors the current scene in a tree. Node ids equal object ids;
// folders get generated ids.
type Tool struct {
	core     *editor.Core
	tree     *gui.Tree
	notifier gui.Notifier
	logger   *zap.Logger

	rootID          string
	renderTargetsID string
	audioID         string
	subMeshFolders  map[string]string

	unregister editor.Unregister
}

func New(core *editor.Core, tree *gui.Tree, notifier gui.Notifier, logger *zap.Logger) *Tool {
	t := &Tool{
		core:           core,
		tree:           tree,
		notifier:       notifier,
		logger:         logger.Named("graph"),
		subMeshFolders: make(map[string]string),
	}
	tree.MenuItems = []gui.MenuItem{
		{ID: MenuDelete, Caption: "Delete"},
		{ID: MenuClone, Caption: "Clone"},
	}
	tree.On(gui.EventClick, func(data any) {
		_ = event.SendGUIEvent(core, tree, event.GraphSelected, data)
	})
	tree.On(gui.EventDoubleClick, func(data any) {
		_ = event.SendGUIEvent(core, tree, event.GraphDoubleSelected, data)
	})
	tree.On(gui.EventMenu, func(data any) {
		_ = event.SendGUIEvent(core, tree, event.GraphMenuSelected, data)
	})
	t.unregister = core.RegisterReceiver(t)
	return t
}

func (t *Tool) Tree() *gui.Tree { return t.tree }

func (t *Tool) Dispose() {
	t.unregister()
	t.tree.Destroy()
}

func (t *Tool) OnEvent(ev event.Event) bool {
	switch {
	case ev.IsScene(event.ObjectAdded):
		t.Add(ev.Scene.Object)
	case ev.IsScene(event.ObjectRemoved):
		t.Remove(ev.Scene.Object)
	case ev.IsScene(event.ObjectPicked):
		t.syncSelection(ev.Scene.Object)
	case ev.IsScene(event.ObjectChanged):
		if obj := ev.Scene.Object; obj != nil {
			t.tree.SetText(obj.ID(), obj.Name())
		}
	case ev.IsGUI(event.GraphSelected):
		if ev.GUI.Caller != t.tree {
			return false
		}
		id, _ := ev.GUI.Data.(string)
		t.pick(id)
	case ev.IsGUI(event.GraphMenuSelected):
		if ev.GUI.Caller != t.tree {
			return false
		}
		me, ok := ev.GUI.Data.(gui.MenuEvent)
		if !ok {
			return false
		}
		node := t.tree.Node(me.NodeID)
		if node == nil || node.Data == "" {
			return false
		}
		switch me.Item {
		case MenuDelete:
			t.Delete(node.Data)
		case MenuClone:
			t.Clone(node.Data)
		}
	default:
		return false
	}
	return true
}

// pick turns a tree selection into the editor-wide selection.
func (t *Tool) pick(nodeID string) {
	node := t.tree.Node(nodeID)
	s := t.core.CurrentScene()
	if node == nil || node.Data == "" || s == nil {
		return
	}
	obj := s.Lookup(node.Data)
	if obj == nil {
		t.logger.Warn("graph node without object", zap.String("node", nodeID))
		return
	}
	_ = event.SendSceneEvent(t.core, obj, event.ObjectPicked)
}

func (t *Tool) syncSelection(obj scene.Object) {
	if obj == nil {
		t.tree.SetSelected("")
		return
	}
	if t.tree.Node(obj.ID()) != nil {
		t.tree.SetSelected(obj.ID())
	}
}

func (t *Tool) ensureRoot(s *scene.Scene) {
	if t.rootID == s.ID() && t.tree.Node(s.ID()) != nil {
		return
	}
	t.rootID = s.ID()
	_ = t.tree.AddNode("", &gui.TreeNode{ID: s.ID(), Text: s.Name(), Icon: icons[scene.KindScene], Data: s.ID()})
	t.renderTargetsID = scene.NewID()
	_ = t.tree.AddNode(s.ID(), &gui.TreeNode{ID: t.renderTargetsID, Text: "Render Targets", Icon: "folder"})
	t.audioID = scene.NewID()
	_ = t.tree.AddNode(s.ID(), &gui.TreeNode{ID: t.audioID, Text: "Audio", Icon: "folder"})
}

// parentNode decides where obj hangs in the tree.
func (t *Tool) parentNode(s *scene.Scene, obj scene.Object) string {
	switch o := obj.(type) {
	case *scene.ParticleSystem:
		if t.tree.Node(o.EmitterID) != nil {
			return o.EmitterID
		}
	case *scene.LensFlareSystem:
		if t.tree.Node(o.EmitterID) != nil {
			return o.EmitterID
		}
	case *scene.RenderTarget, *scene.ReflectionProbe:
		return t.renderTargetsID
	case *scene.Sound:
		if track := s.SoundTrack(o.SoundTrackID); track != nil {
			if t.tree.Node(track.ID) == nil {
				_ = t.tree.AddNode(t.audioID, &gui.TreeNode{ID: track.ID, Text: track.Name, Icon: "soundtrack"})
			}
			return track.ID
		}
		return t.audioID
	case *scene.SubMesh:
		if folder, ok := t.subMeshFolders[o.MeshID]; ok {
			return folder
		}
		if t.tree.Node(o.MeshID) != nil {
			return o.MeshID
		}
	case scene.NodeObject:
		if p := o.Base().ParentID; p != "" && t.tree.Node(p) != nil {
			return p
		}
	}
	return s.ID()
}

// Add inserts a node for obj, plus a sub-mesh folder for meshes drawn with
// more than one sub-mesh.
func (t *Tool) Add(obj scene.Object) {
	s := t.core.CurrentScene()
	if obj == nil || s == nil {
		return
	}
	if _, isScene := obj.(*scene.Scene); isScene {
		return
	}
	t.ensureRoot(s)

	node := &gui.TreeNode{ID: obj.ID(), Text: obj.Name(), Icon: icons[obj.Kind()], Data: obj.ID()}
	if err := t.tree.AddNode(t.parentNode(s, obj), node); err != nil {
		if errors.Is(err, gui.ErrDuplicateID) {
			return
		}
		t.logger.Warn("cannot add graph node", zap.String("object", obj.ID()), zap.Error(err))
		return
	}

	if mesh, ok := obj.(*scene.Mesh); ok && len(mesh.SubMeshes) > 1 {
		folder := scene.NewID()
		t.subMeshFolders[mesh.ID()] = folder
		_ = t.tree.AddNode(mesh.ID(), &gui.TreeNode{ID: folder, Text: "Sub-Meshes", Icon: "folder"})
		for _, sm := range mesh.SubMeshes {
			_ = t.tree.AddNode(folder, &gui.TreeNode{ID: sm.ID(), Text: sm.Name(), Icon: icons[scene.KindSubMesh], Data: sm.ID()})
		}
	}
	t.tree.Refresh()
}

func (t *Tool) Remove(obj scene.Object) {
	if obj == nil {
		return
	}
	if t.tree.RemoveNode(obj.ID()) {
		delete(t.subMeshFolders, obj.ID())
		t.tree.Refresh()
	}
}

// Delete disposes the object and everything orphaned by it, then reports
// each removal. The edit camera and the scene itself cannot be deleted.
func (t *Tool) Delete(id string) {
	s := t.core.CurrentScene()
	if s == nil {
		return
	}
	obj := s.Lookup(id)
	if obj == nil {
		return
	}
	if _, isScene := obj.(*scene.Scene); isScene {
		return
	}
	if cam, ok := obj.(*scene.Camera); ok && t.isEditCamera(cam) {
		t.notifier.Alert("Cannot Delete", "Cannot remove the active camera")
		return
	}

	removed, err := s.Dispose(id)
	if err != nil {
		t.logger.Warn("delete failed", zap.String("object", id), zap.Error(err))
		return
	}
	t.logger.Debug("deleted", zap.String("object", id), zap.Int("removed", len(removed)))
	for _, o := range removed {
		_ = event.SendSceneEvent(t.core, o, event.ObjectRemoved)
	}
}

func (t *Tool) isEditCamera(cam *scene.Camera) bool {
	active, ok := t.core.Camera().(*scene.Camera)
	return ok && active.ID() == cam.ID()
}

// Clone duplicates a mesh and the particle systems it emits.
func (t *Tool) Clone(id string) {
	s := t.core.CurrentScene()
	if s == nil {
		return
	}
	clone, systems, err := s.CloneMesh(id)
	switch {
	case errors.Is(err, scene.ErrCustomGeometry):
		t.notifier.Alert("Cannot Clone", "Meshes with custom geometry cannot be cloned")
		return
	case err != nil:
		t.logger.Warn("clone failed", zap.String("object", id), zap.Error(err))
		return
	}
	_ = event.SendSceneEvent(t.core, clone, event.ObjectAdded)
	for _, ps := range systems {
		_ = event.SendSceneEvent(t.core, ps, event.ObjectAdded)
	}
}

// FillGraph rebuilds the tree from scratch: the scene root, the render
// targets folder, the audio folder with its soundtracks, then every node
// hierarchy with its particle and lens flare systems.
func (t *Tool) FillGraph() {
	t.tree.Clear()
	t.subMeshFolders = make(map[string]string)
	t.rootID = ""
	s := t.core.CurrentScene()
	if s == nil {
		t.tree.Refresh()
		return
	}
	t.ensureRoot(s)

	for _, rt := range s.RenderTargets() {
		t.addNode(t.renderTargetsID, rt)
	}
	for _, p := range s.ReflectionProbes() {
		t.addNode(t.renderTargetsID, p)
	}
	for _, track := range s.SoundTracks() {
		_ = t.tree.AddNode(t.audioID, &gui.TreeNode{ID: track.ID, Text: track.Name, Icon: "soundtrack"})
		for _, id := range track.Sounds {
			if snd := s.Lookup(id); snd != nil {
				t.addNode(track.ID, snd)
			}
		}
	}
	for _, snd := range s.Sounds() {
		if t.tree.Node(snd.ID()) == nil {
			t.addNode(t.audioID, snd)
		}
	}

	var roots []scene.NodeObject
	for _, n := range s.Roots() {
		if n.Kind() == scene.KindCamera {
			roots = append(roots, n)
		}
	}
	for _, n := range s.Roots() {
		if n.Kind() == scene.KindLight {
			roots = append(roots, n)
		}
	}
	for _, n := range s.Roots() {
		if n.Kind() == scene.KindMesh {
			roots = append(roots, n)
		}
	}
	for _, n := range roots {
		t.fillNode(s, s.ID(), n)
	}
	t.tree.Refresh()
}

func (t *Tool) fillNode(s *scene.Scene, parent string, n scene.NodeObject) {
	t.addNode(parent, n)
	for _, ps := range s.ParticleSystemsOf(n.ID()) {
		t.addNode(n.ID(), ps)
	}
	for _, lf := range s.LensFlareSystemsOf(n.ID()) {
		t.addNode(n.ID(), lf)
	}
	if mesh, ok := n.(*scene.Mesh); ok && len(mesh.SubMeshes) > 1 {
		folder := scene.NewID()
		t.subMeshFolders[mesh.ID()] = folder
		_ = t.tree.AddNode(mesh.ID(), &gui.TreeNode{ID: folder, Text: "Sub-Meshes", Icon: "folder"})
		for _, sm := range mesh.SubMeshes {
			t.addNode(folder, sm)
		}
	}
	for _, child := range s.Children(n.ID()) {
		if c, ok := child.(scene.NodeObject); ok {
			t.fillNode(s, n.ID(), c)
		}
	}
}

func (t *Tool) addNode(parent string, obj scene.Object) {
	err := t.tree.AddNode(parent, &gui.TreeNode{ID: obj.ID(), Text: obj.Name(), Icon: icons[obj.Kind()], Data: obj.ID()})
	if err != nil {
		t.logger.Debug("skipping graph node", zap.String("object", obj.ID()), zap.Error(err))
	}
}
