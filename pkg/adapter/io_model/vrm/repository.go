// 指示: miu200521358
// Package vrm はVRM(GLB)からヒューマノイドの初期姿勢を読み込む。
package vrm

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_vrik/pkg/domain/mmath"
	"github.com/miu200521358/mu_vrik/pkg/domain/model"
	"github.com/miu200521358/mu_vrik/pkg/shared/logging"
)

const (
	glbHeaderLength   = 12
	glbChunkHeadSize  = 8
	glbMagic          = 0x46546C67
	glbJSONChunkType  = 0x4E4F534A
	glbMinValidLength = glbHeaderLength + glbChunkHeadSize
)

var (
	// ErrExtInvalid は拡張子が.vrmでない場合のエラー。
	ErrExtInvalid = errors.New("VRMファイルの拡張子が不正です")
	// ErrFileNotFound はファイルが存在しない場合のエラー。
	ErrFileNotFound = errors.New("VRMファイルが見つかりません")
	// ErrParseFailed はGLBやJSONの解析に失敗した場合のエラー。
	ErrParseFailed = errors.New("VRMファイルの解析に失敗しました")
	// ErrFormatNotSupported はVRM拡張が無いか未対応の場合のエラー。
	ErrFormatNotSupported = errors.New("VRM形式が未対応です")
)

// VrmVersion はVRM拡張のバージョン。
type VrmVersion string

const (
	// VRM_VERSION_0 はVRM0(VRM拡張)。
	VRM_VERSION_0 VrmVersion = "0.x"
	// VRM_VERSION_1 はVRM1(VRMC_vrm拡張)。
	VRM_VERSION_1 VrmVersion = "1.0"
)

// LoadProgressEventType はVRM読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeJsonParsed はJSON解析完了イベントを表す。
	LoadProgressEventTypeJsonParsed LoadProgressEventType = "json_parsed"
	// LoadProgressEventTypeCompleted はVRM読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はVRM読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type          LoadProgressEventType
	FileSizeBytes int
	NodeCount     int
	JointCount    int
}

// VrmRepository はVRMから初期姿勢のスケルトンを読み込むリポジトリ。
type VrmRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewVrmRepository はVrmRepositoryを生成する。
func NewVrmRepository() *VrmRepository {
	return &VrmRepository{}
}

// SetLoadProgressReporter はVRM読込進捗受信コールバックを設定する。
func (r *VrmRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *VrmRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".vrm")
}

// LoadSkeleton はVRMのヒューマノイド関節を初期姿勢として読み込む。
// 座標はソルバー座標系(+Z前方、+Y上方、キャラクターの左が-X)へ変換する。
func (r *VrmRepository) LoadSkeleton(path string) (*model.Skeleton, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("%w: %s", ErrExtInvalid, path)
	}
	loadTargetName := filepath.Base(path)
	logVrmInfo("VRM読込開始: file=%s", loadTargetName)

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	r.reportLoadProgress(LoadProgressEvent{Type: LoadProgressEventTypeFileReadComplete, FileSizeBytes: len(b)})

	jsonChunk, err := parseGLBJSONChunk(b)
	if err != nil {
		return nil, err
	}
	doc := gltfDocument{}
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, fmt.Errorf("%w: JSONチャンク: %v", ErrParseFailed, err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeJsonParsed,
		FileSizeBytes: len(b),
		NodeCount:     len(doc.Nodes),
	})
	logVrmDebug("VRM読込ステップ: JSON解析完了 nodes=%d", len(doc.Nodes))

	parentIndexes, err := buildNodeParentIndexes(doc.Nodes)
	if err != nil {
		return nil, err
	}
	worldMats, err := buildNodeWorldMatrices(doc.Nodes, parentIndexes)
	if err != nil {
		return nil, err
	}

	version := detectVrmVersion(&doc)
	humanBones, err := parseHumanBones(version, doc.Extensions)
	if err != nil {
		return nil, err
	}
	logVrmDebug("VRM読込ステップ: VRM拡張解析完了 version=%s humanBones=%d", version, len(humanBones))

	skeleton, err := buildSkeleton(version, humanBones, worldMats)
	if err != nil {
		return nil, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeCompleted,
		FileSizeBytes: len(b),
		NodeCount:     len(doc.Nodes),
		JointCount:    skeleton.Len(),
	})
	logVrmInfo("VRM読込完了: file=%s version=%s joints=%d", loadTargetName, version, skeleton.Len())
	return skeleton, nil
}

// reportLoadProgress は読込進捗イベントを通知する。
func (r *VrmRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// logVrmInfo はVRM読込のINFOログを出力する。
func logVrmInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logVrmDebug はVRM読込のデバッグログを出力する。
func logVrmDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}

// gltfDocument はVRM読込時に必要なglTFトップレベル要素を表す。
type gltfDocument struct {
	ExtensionsUsed []string                   `json:"extensionsUsed"`
	Nodes          []gltfNode                 `json:"nodes"`
	Extensions     map[string]json.RawMessage `json:"extensions"`
}

// gltfNode はglTF node要素を表す。
type gltfNode struct {
	Name        string    `json:"name"`
	Children    []int     `json:"children"`
	Matrix      []float64 `json:"matrix"`
	Translation []float64 `json:"translation"`
	Rotation    []float64 `json:"rotation"`
	Scale       []float64 `json:"scale"`
}

// vrm0Extension はVRM0拡張の必要要素を表す。
type vrm0Extension struct {
	Humanoid struct {
		HumanBones []struct {
			Bone string `json:"bone"`
			Node int    `json:"node"`
		} `json:"humanBones"`
	} `json:"humanoid"`
}

// vrm1Extension はVRM1拡張の必要要素を表す。
type vrm1Extension struct {
	Humanoid struct {
		HumanBones map[string]struct {
			Node *int `json:"node"`
		} `json:"humanBones"`
	} `json:"humanoid"`
}

// parseGLBJSONChunk はGLBバイナリからJSONチャンクを取り出す。
func parseGLBJSONChunk(b []byte) ([]byte, error) {
	if len(b) < glbMinValidLength {
		return nil, fmt.Errorf("%w: VRMヘッダが不足しています", ErrParseFailed)
	}
	magic := binary.LittleEndian.Uint32(b[0:4])
	if magic != glbMagic {
		return nil, fmt.Errorf("%w: GLBマジックが不正です", ErrParseFailed)
	}
	version := binary.LittleEndian.Uint32(b[4:8])
	if version != 2 {
		return nil, fmt.Errorf("%w: GLBバージョンが未対応です: %d", ErrFormatNotSupported, version)
	}
	totalLength := binary.LittleEndian.Uint32(b[8:12])
	if totalLength > uint32(len(b)) {
		return nil, fmt.Errorf("%w: GLB全体長が不正です", ErrParseFailed)
	}

	offset := glbHeaderLength
	for offset+glbChunkHeadSize <= len(b) {
		chunkLength := int(binary.LittleEndian.Uint32(b[offset : offset+4]))
		chunkType := binary.LittleEndian.Uint32(b[offset+4 : offset+8])
		chunkStart := offset + glbChunkHeadSize
		chunkEnd := chunkStart + chunkLength
		if chunkLength < 0 || chunkEnd > len(b) {
			return nil, fmt.Errorf("%w: GLBチャンク長が不正です", ErrParseFailed)
		}
		if chunkType == glbJSONChunkType {
			return b[chunkStart:chunkEnd], nil
		}
		offset = chunkEnd
	}
	return nil, fmt.Errorf("%w: GLB JSONチャンクが見つかりません", ErrParseFailed)
}

// buildNodeParentIndexes はnode配列から親インデックス配列を生成する。
func buildNodeParentIndexes(nodes []gltfNode) ([]int, error) {
	parentIndexes := make([]int, len(nodes))
	for i := range parentIndexes {
		parentIndexes[i] = -1
	}
	for parentIndex, node := range nodes {
		for _, childIndex := range node.Children {
			if childIndex < 0 || childIndex >= len(nodes) {
				return nil, fmt.Errorf("%w: node.children のindexが不正です: %d", ErrParseFailed, childIndex)
			}
			if parentIndexes[childIndex] == -1 {
				parentIndexes[childIndex] = parentIndex
			}
		}
	}
	return parentIndexes, nil
}

// buildNodeWorldMatrices はnodeのローカル変換からワールド行列を算出する。
func buildNodeWorldMatrices(nodes []gltfNode, parents []int) ([]mgl64.Mat4, error) {
	worldMats := make([]mgl64.Mat4, len(nodes))
	state := make([]int, len(nodes))
	for i := range nodes {
		if err := resolveNodeWorldMatrix(nodes, parents, i, state, worldMats); err != nil {
			return nil, err
		}
	}
	return worldMats, nil
}

// resolveNodeWorldMatrix はnodeのワールド行列を再帰的に解決する。
func resolveNodeWorldMatrix(
	nodes []gltfNode,
	parents []int,
	nodeIndex int,
	state []int,
	worldMats []mgl64.Mat4,
) error {
	if nodeIndex < 0 || nodeIndex >= len(nodes) {
		return fmt.Errorf("%w: node index が不正です: %d", ErrParseFailed, nodeIndex)
	}
	if state[nodeIndex] == 2 {
		return nil
	}
	if state[nodeIndex] == 1 {
		return fmt.Errorf("%w: node親子関係に循環があります: %d", ErrParseFailed, nodeIndex)
	}
	state[nodeIndex] = 1
	local, err := nodeLocalMatrix(nodes[nodeIndex])
	if err != nil {
		return err
	}
	parentIndex := parents[nodeIndex]
	if parentIndex >= 0 {
		if err := resolveNodeWorldMatrix(nodes, parents, parentIndex, state, worldMats); err != nil {
			return err
		}
		worldMats[nodeIndex] = worldMats[parentIndex].Mul4(local)
	} else {
		worldMats[nodeIndex] = local
	}
	state[nodeIndex] = 2
	return nil
}

// nodeLocalMatrix はnode要素からローカル行列(T*R*S)を生成する。
func nodeLocalMatrix(node gltfNode) (mgl64.Mat4, error) {
	if len(node.Matrix) > 0 {
		if len(node.Matrix) != 16 {
			return mgl64.Ident4(), fmt.Errorf("%w: node.matrix の要素数が不正です: %d", ErrParseFailed, len(node.Matrix))
		}
		var mat mgl64.Mat4
		copy(mat[:], node.Matrix)
		return mat, nil
	}

	translation, err := parseVec3(node.Translation, mmath.ZERO_VEC3, "node.translation")
	if err != nil {
		return mgl64.Ident4(), err
	}
	scale, err := parseVec3(node.Scale, mmath.ONE_VEC3, "node.scale")
	if err != nil {
		return mgl64.Ident4(), err
	}
	rotation, err := parseQuaternion(node.Rotation)
	if err != nil {
		return mgl64.Ident4(), err
	}

	return mgl64.Translate3D(translation.X, translation.Y, translation.Z).
		Mul4(rotation.Quat.Mat4()).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z)), nil
}

// parseVec3 はスライスをVec3へ変換する。
func parseVec3(values []float64, defaultValue mmath.Vec3, label string) (mmath.Vec3, error) {
	if len(values) == 0 {
		return defaultValue, nil
	}
	v, err := mmath.NewVec3FromSlice(values)
	if err != nil {
		return mmath.ZERO_VEC3, fmt.Errorf("%w: %s: %v", ErrParseFailed, label, err)
	}
	return v, nil
}

// parseQuaternion はスライスをQuaternionへ変換する。
func parseQuaternion(values []float64) (mmath.Quaternion, error) {
	if len(values) == 0 {
		return mmath.NewQuaternion(), nil
	}
	q, err := mmath.NewQuaternionFromSlice(values)
	if err != nil {
		return mmath.NewQuaternion(), fmt.Errorf("%w: node.rotation: %v", ErrParseFailed, err)
	}
	return q, nil
}

// detectVrmVersion は拡張宣言から優先バージョンを判定する。
func detectVrmVersion(doc *gltfDocument) VrmVersion {
	hasVrm1 := containsIgnoreCase(doc.ExtensionsUsed, "VRMC_vrm")
	hasVrm0 := containsIgnoreCase(doc.ExtensionsUsed, "VRM")
	if doc.Extensions != nil {
		if _, ok := doc.Extensions["VRMC_vrm"]; ok {
			hasVrm1 = true
		}
		if _, ok := doc.Extensions["VRM"]; ok {
			hasVrm0 = true
		}
	}

	// VRM0/1 同時宣言時は VRM1 を優先する。
	if hasVrm1 {
		return VRM_VERSION_1
	}
	if hasVrm0 {
		return VRM_VERSION_0
	}
	return ""
}

// containsIgnoreCase は大文字小文字を無視して要素を検索する。
func containsIgnoreCase(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(value, target) {
			return true
		}
	}
	return false
}

// parseHumanBones はバージョンに応じたhumanBonesからボーン名とnodeの対応を取り出す。
func parseHumanBones(version VrmVersion, extensions map[string]json.RawMessage) (map[string]int, error) {
	humanBones := map[string]int{}
	switch version {
	case VRM_VERSION_1:
		ext := vrm1Extension{}
		if err := json.Unmarshal(extensions["VRMC_vrm"], &ext); err != nil {
			return nil, fmt.Errorf("%w: VRM1拡張のJSON解析に失敗しました: %v", ErrParseFailed, err)
		}
		for name, bone := range ext.Humanoid.HumanBones {
			if bone.Node != nil {
				humanBones[name] = *bone.Node
			}
		}
	case VRM_VERSION_0:
		ext := vrm0Extension{}
		if err := json.Unmarshal(extensions["VRM"], &ext); err != nil {
			return nil, fmt.Errorf("%w: VRM0拡張のJSON解析に失敗しました: %v", ErrParseFailed, err)
		}
		for _, bone := range ext.Humanoid.HumanBones {
			humanBones[bone.Bone] = bone.Node
		}
	default:
		return nil, fmt.Errorf("%w: VRM拡張が見つかりません", ErrFormatNotSupported)
	}
	return humanBones, nil
}
