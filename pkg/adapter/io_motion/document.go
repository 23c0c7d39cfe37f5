// 指示: miu200521358
package io_motion

import (
	"fmt"

	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// motionDocument はモーションファイルのYAML表現。
type motionDocument struct {
	Name   string          `yaml:"name,omitempty"`
	Bind   *skeletonDoc    `yaml:"bind,omitempty"`
	Frames []frameDocument `yaml:"frames"`
}

type skeletonDoc struct {
	Joints []jointDocument `yaml:"joints"`
}

type jointDocument struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position,flow"`
	Rotation []float64 `yaml:"rotation,flow,omitempty"`
}

type frameDocument struct {
	Index    int                       `yaml:"index"`
	Skeleton *skeletonDoc              `yaml:"skeleton,omitempty"`
	Targets  map[string]targetDocument `yaml:"targets,omitempty"`
}

type targetDocument struct {
	Position       []float64 `yaml:"position,flow,omitempty"`
	Rotation       []float64 `yaml:"rotation,flow,omitempty"`
	BendGoal       []float64 `yaml:"bend_goal,flow,omitempty"`
	PositionOffset []float64 `yaml:"position_offset,flow,omitempty"`
}

// toMotion は文書をドメインのモーションへ変換する。
func (d *motionDocument) toMotion() (*model.Motion, error) {
	motion := model.NewMotion(d.Name)
	if d.Bind != nil {
		bind, err := d.Bind.toSkeleton()
		if err != nil {
			return nil, fmt.Errorf("bind: %w", err)
		}
		motion.Bind = bind
	}
	for i, frameDoc := range d.Frames {
		frame := model.MotionFrame{Index: frameDoc.Index, Targets: map[model.LimbID]model.IkTarget{}}
		if frameDoc.Skeleton != nil {
			skeleton, err := frameDoc.Skeleton.toSkeleton()
			if err != nil {
				return nil, fmt.Errorf("frames[%d]: %w", i, err)
			}
			frame.Skeleton = skeleton
		}
		for name, targetDoc := range frameDoc.Targets {
			id, err := model.ParseLimbID(name)
			if err != nil {
				return nil, fmt.Errorf("frames[%d]: %w", i, err)
			}
			target, err := targetDoc.toTarget()
			if err != nil {
				return nil, fmt.Errorf("frames[%d].%s: %w", i, name, err)
			}
			frame.Targets[id] = target
		}
		motion.AppendFrame(frame)
	}
	return motion, nil
}

func (d *skeletonDoc) toSkeleton() (*model.Skeleton, error) {
	skeleton := model.NewSkeleton()
	for _, jointDoc := range d.Joints {
		name := model.HumanoidBone(jointDoc.Name)
		if !name.IsKnown() {
			return nil, fmt.Errorf("%w: %s", model.ErrJointNotFound, jointDoc.Name)
		}
		position, err := mmath.NewVec3FromSlice(jointDoc.Position)
		if err != nil {
			return nil, fmt.Errorf("%s.position: %w", name, err)
		}
		rotation := mmath.NewQuaternion()
		if len(jointDoc.Rotation) > 0 {
			if rotation, err = mmath.NewQuaternionFromSlice(jointDoc.Rotation); err != nil {
				return nil, fmt.Errorf("%s.rotation: %w", name, err)
			}
		}
		skeleton.Set(name, position, rotation)
	}
	return skeleton, nil
}

func (d targetDocument) toTarget() (model.IkTarget, error) {
	var target model.IkTarget
	if len(d.Position) > 0 {
		position, err := mmath.NewVec3FromSlice(d.Position)
		if err != nil {
			return target, fmt.Errorf("position: %w", err)
		}
		target.Position = &position
	}
	if len(d.Rotation) > 0 {
		rotation, err := mmath.NewQuaternionFromSlice(d.Rotation)
		if err != nil {
			return target, fmt.Errorf("rotation: %w", err)
		}
		target.Rotation = &rotation
	}
	if len(d.BendGoal) > 0 {
		goal, err := mmath.NewVec3FromSlice(d.BendGoal)
		if err != nil {
			return target, fmt.Errorf("bend_goal: %w", err)
		}
		target.BendGoal = &goal
	}
	if len(d.PositionOffset) > 0 {
		offset, err := mmath.NewVec3FromSlice(d.PositionOffset)
		if err != nil {
			return target, fmt.Errorf("position_offset: %w", err)
		}
		target.PositionOffset = offset
	}
	return target, nil
}

// newMotionDocument はモーションを文書へ変換する。
func newMotionDocument(motion *model.Motion) *motionDocument {
	doc := &motionDocument{Name: motion.Name, Frames: make([]frameDocument, 0, motion.Len())}
	if motion.Bind != nil {
		doc.Bind = newSkeletonDoc(motion.Bind)
	}
	for _, frame := range motion.Frames {
		frameDoc := frameDocument{Index: frame.Index}
		if frame.Skeleton != nil {
			frameDoc.Skeleton = newSkeletonDoc(frame.Skeleton)
		}
		if len(frame.Targets) > 0 {
			frameDoc.Targets = make(map[string]targetDocument, len(frame.Targets))
			for id, target := range frame.Targets {
				frameDoc.Targets[string(id)] = newTargetDocument(target)
			}
		}
		doc.Frames = append(doc.Frames, frameDoc)
	}
	return doc
}

func newSkeletonDoc(skeleton *model.Skeleton) *skeletonDoc {
	doc := &skeletonDoc{Joints: make([]jointDocument, 0, skeleton.Len())}
	for _, joint := range skeleton.Joints {
		doc.Joints = append(doc.Joints, jointDocument{
			Name:     string(joint.Name),
			Position: joint.Position.Vector(),
			Rotation: joint.Rotation.Vector(),
		})
	}
	return doc
}

func newTargetDocument(target model.IkTarget) targetDocument {
	var doc targetDocument
	if target.Position != nil {
		doc.Position = target.Position.Vector()
	}
	if target.Rotation != nil {
		doc.Rotation = target.Rotation.Vector()
	}
	if target.BendGoal != nil {
		doc.BendGoal = target.BendGoal.Vector()
	}
	if !target.PositionOffset.IsZero() {
		doc.PositionOffset = target.PositionOffset.Vector()
	}
	return doc
}
