// 指示: miu200521358
package vrm

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
)

// axisConversion はglTF座標からソルバー座標への鏡映。反転する軸を-1で持つ。
type axisConversion struct {
	Axis mmath.Vec3
}

// conversionFor はバージョンごとの鏡映を返す。
// VRM1は+Z前方で左が+XのためXを反転し、VRM0は-Z前方で左が-XのためZを反転する。
func conversionFor(version VrmVersion) axisConversion {
	if version == VRM_VERSION_0 {
		return axisConversion{Axis: mmath.NewVec3(1, 1, -1)}
	}
	return axisConversion{Axis: mmath.NewVec3(-1, 1, 1)}
}

// position は位置を鏡映する。
func (c axisConversion) position(v mmath.Vec3) mmath.Vec3 {
	return mmath.NewVec3(v.X*c.Axis.X, v.Y*c.Axis.Y, v.Z*c.Axis.Z)
}

// rotation は回転を鏡映する。鏡映した軸回りの回転は向きが反転する。
func (c axisConversion) rotation(q mmath.Quaternion) mmath.Quaternion {
	det := c.Axis.X * c.Axis.Y * c.Axis.Z
	return mmath.NewQuaternionByValues(
		q.X()*c.Axis.X*det,
		q.Y()*c.Axis.Y*det,
		q.Z()*c.Axis.Z*det,
		q.W(),
	)
}

// buildSkeleton は既知のヒューマノイド関節をワールド姿勢へ変換してスケルトンを構築する。
func buildSkeleton(version VrmVersion, humanBones map[string]int, worldMats []mgl64.Mat4) (*model.Skeleton, error) {
	conversion := conversionFor(version)
	skeleton := model.NewSkeleton()
	for _, bone := range model.HumanoidBones() {
		nodeIndex, ok := humanBones[string(bone)]
		if !ok {
			continue
		}
		if nodeIndex < 0 || nodeIndex >= len(worldMats) {
			return nil, fmt.Errorf("%w: humanBone %s のnode indexが不正です: %d", ErrParseFailed, bone, nodeIndex)
		}
		world := worldMats[nodeIndex]
		translation := world.Col(3)
		position := mmath.NewVec3(translation[0], translation[1], translation[2])
		rotation := mmath.NewQuaternionFromMat4([16]float64(world))
		skeleton.Set(bone, conversion.position(position), conversion.rotation(rotation))
	}
	if skeleton.Len() == 0 {
		return nil, fmt.Errorf("%w: ヒューマノイド関節がありません", ErrFormatNotSupported)
	}
	return skeleton, nil
}
