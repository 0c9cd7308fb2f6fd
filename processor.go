package transcode

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// Compound tags understood by Processor.
const (
	tagWriteDigest  = "write.digest"
	tagWriteEncode  = "write.encode"
	tagReadDecode   = "read.decode"
	tagReadValidate = "read.validate"
)

var processorTags = []string{
	tagWriteDigest,
	tagWriteEncode,
	tagReadDecode,
	tagReadValidate,
}

func init() {
	for _, tag := range processorTags {
		sentinel.Tag(tag)
	}
}

// Processor transcodes tagged struct fields around a Codec.
// Use Write for egress and Read for ingress.
//
// Processors are safe for concurrent use. SetHasher may be called at any time.
//
// Validation occurs automatically on first operation. Configure all required
// hashers before the first call to Write or Read.
type Processor[T Cloner[T]] struct {
	codec   Codec
	b64     *Base64Codec
	unicode *UnicodeCodec

	// Mutable configuration protected by mu
	mu      sync.RWMutex
	hashers map[HashAlgo]Hasher

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error

	// Per-direction field plans (immutable after construction)
	writePlans writePlan
	readPlans  readPlan

	typeName string
}

// writePlan holds field plans for write actions, applied in field order.
type writePlan struct {
	digestFields []processorFieldPlan
	encodeFields []processorFieldPlan
}

// readPlan holds field plans for read actions.
type readPlan struct {
	decodeFields   []processorFieldPlan
	validateFields []processorFieldPlan
}

// processorFieldPlan describes how to transform a single field.
type processorFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	tagVal     string // tag value (e.g., "base64", "sha256", "utf8")
	isBytes    bool   // true if field is []byte, false if string
	ptrIndices []int  // indices where pointer dereference is needed
	isSlice    bool   // true if field is []string
	isMap      bool   // true if field is map[K]string
}

// typeFieldPlans is the cached result of scanning one type.
type typeFieldPlans struct {
	typeName string
	write    writePlan
	read     readPlan
}

var planCache sync.Map // reflect.Type -> *typeFieldPlans

// ProcessorOption configures a Processor.
type ProcessorOption func(*processorConfig)

type processorConfig struct {
	b64     *Base64Codec
	unicode *UnicodeCodec
	hashers map[HashAlgo]Hasher
}

// WithBase64 sets the codec used by write.encode and read.decode.
// The default decodes leniently.
func WithBase64(c *Base64Codec) ProcessorOption {
	return func(cfg *processorConfig) {
		cfg.b64 = c
	}
}

// WithUnicode sets the codec used by read.validate.
// The default fails on truncated sequences and permits any value.
func WithUnicode(c *UnicodeCodec) ProcessorOption {
	return func(cfg *processorConfig) {
		cfg.unicode = c
	}
}

// WithHasher registers or replaces a hasher at construction time.
func WithHasher(algo HashAlgo, h Hasher) ProcessorOption {
	return func(cfg *processorConfig) {
		cfg.hashers[algo] = h
	}
}

// NewProcessor creates a new Processor for type T.
//
// The processor starts with the builtin hashers, a lenient Base64Codec and a
// UnicodeCodec that fails on truncation. Tag values are checked here; hasher
// presence is checked by Validate.
func NewProcessor[T Cloner[T]](codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	plans, err := getOrBuildPlans[T]()
	if err != nil {
		return nil, err
	}

	cfg := &processorConfig{
		b64:     NewBase64Codec(),
		unicode: NewUnicodeCodec(),
		hashers: builtinHashers(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Processor[T]{
		codec:      codec,
		b64:        cfg.b64,
		unicode:    cfg.unicode,
		hashers:    cfg.hashers,
		typeName:   plans.typeName,
		writePlans: plans.write,
		readPlans:  plans.read,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plans.typeName)
	return p, nil
}

// SetHasher registers a hasher for the given algorithm. A nil hasher
// unregisters algo, as RemoveHasher does.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetHasher(algo HashAlgo, h Hasher) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h == nil {
		delete(p.hashers, algo)
		return p
	}
	p.hashers[algo] = h
	return p
}

// RemoveHasher unregisters the hasher for algo.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) RemoveHasher(algo HashAlgo) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.hashers, algo)
	return p
}

// Codec returns the processor's codec.
func (p *Processor[T]) Codec() Codec {
	return p.codec
}

// Validate checks that every write.digest field has a registered hasher.
//
// Validation also runs automatically on first operation. Calling Validate
// explicitly allows catching configuration errors at startup.
func (p *Processor[T]) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Processor[T]) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.mu.RLock()
		defer p.mu.RUnlock()
		p.validateErr = p.validateCapabilities()
	})
	return p.validateErr
}

// validateCapabilities ensures all required hashers are registered.
// Skipped when T implements Digestable.
func (p *Processor[T]) validateCapabilities() error {
	var zero T
	if _, ok := any(&zero).(Digestable); ok {
		return nil
	}

	for _, plan := range p.writePlans.digestFields {
		if h, ok := p.hashers[HashAlgo(plan.tagVal)]; !ok || h == nil {
			return newConfigError(ErrMissingHasher, plan.tagVal, plan.name)
		}
	}
	return nil
}

func getOrBuildPlans[T Cloner[T]]() (*typeFieldPlans, error) {
	typ := reflect.TypeFor[T]()
	if cached, ok := planCache.Load(typ); ok {
		return cached.(*typeFieldPlans), nil
	}

	plans, err := buildFieldPlans[T]()
	if err != nil {
		return nil, err
	}

	actual, _ := planCache.LoadOrStore(typ, plans)
	return actual.(*typeFieldPlans), nil
}

// buildFieldPlans creates field plans for type T by scanning struct tags.
func buildFieldPlans[T Cloner[T]]() (*typeFieldPlans, error) {
	spec := sentinel.Scan[T]()
	plans := &typeFieldPlans{
		typeName: spec.TypeName,
	}

	if err := buildFieldPlansRecursive(plans, spec, nil, nil, ""); err != nil {
		return nil, err
	}

	return plans, nil
}

// buildFieldPlansRecursive recursively processes fields and nested structs.
func buildFieldPlansRecursive(plans *typeFieldPlans, spec sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		if field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil {
				if err := buildFieldPlansRecursive(plans, *nested, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			if nested := scanNestedType(field.ReflectType.Elem()); nested != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildFieldPlansRecursive(plans, *nested, fullIndex, newPtrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		rt := field.ReflectType
		isString := rt.Kind() == reflect.String
		isBytes := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8
		isStringSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isStringMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String

		if !isString && !isBytes && !isStringSlice && !isStringMap {
			continue
		}

		base := processorFieldPlan{
			index:      fullIndex,
			name:       fullName,
			isBytes:    isBytes,
			ptrIndices: ptrIndices,
			isSlice:    isStringSlice,
			isMap:      isStringMap,
		}

		if val, ok := field.Tags[tagWriteDigest]; ok {
			if !IsValidHashAlgo(HashAlgo(val)) {
				return newConfigError(ErrInvalidTag, val, fullName)
			}
			plans.write.digestFields = append(plans.write.digestFields, withTag(base, val))
		}

		if val, ok := field.Tags[tagWriteEncode]; ok {
			if !IsValidTextEncoding(TextEncoding(val)) {
				return newConfigError(ErrInvalidTag, val, fullName)
			}
			plans.write.encodeFields = append(plans.write.encodeFields, withTag(base, val))
		}

		if val, ok := field.Tags[tagReadDecode]; ok {
			if !IsValidTextEncoding(TextEncoding(val)) {
				return newConfigError(ErrInvalidTag, val, fullName)
			}
			plans.read.decodeFields = append(plans.read.decodeFields, withTag(base, val))
		}

		if val, ok := field.Tags[tagReadValidate]; ok {
			if !IsValidTextForm(TextForm(val)) {
				return newConfigError(ErrInvalidTag, val, fullName)
			}
			plans.read.validateFields = append(plans.read.validateFields, withTag(base, val))
		}
	}

	return nil
}

func withTag(plan processorFieldPlan, val string) processorFieldPlan {
	plan.tagVal = val
	return plan
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseProcessorTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseProcessorTags extracts direction.action tags from a struct tag.
func parseProcessorTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range processorTags {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// Write applies write actions (digest, then encode) to a clone of obj and
// marshals the result. obj itself is never modified.
func (p *Processor[T]) Write(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitWriteStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitWriteComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start),
			len(p.writePlans.digestFields), len(p.writePlans.encodeFields), retErr)
	}()

	if obj == nil {
		retData, retErr = p.marshal(nil)
		return retData, retErr
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	if d, ok := any(&clone).(Digestable); ok {
		if err := d.Digest(p.hashers); err != nil {
			retErr = newTransformError(ErrDigest, "digest", p.typeName, err)
			return nil, retErr
		}
	} else if err := p.applyDigest(&clone); err != nil {
		retErr = err
		return nil, retErr
	}

	if e, ok := any(&clone).(Encodable); ok {
		if err := e.Encode(p.b64); err != nil {
			retErr = newTransformError(ErrEncode, "encode", p.typeName, err)
			return nil, retErr
		}
	} else {
		p.applyEncode(&clone)
	}

	retData, retErr = p.marshal(&clone)
	return retData, retErr
}

// Read unmarshals data and applies read actions (decode, then validate).
func (p *Processor[T]) Read(ctx context.Context, data []byte) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	emitReadStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	defer func() {
		emitReadComplete(ctx, p.codec.ContentType(), p.typeName,
			len(data), time.Since(start),
			len(p.readPlans.decodeFields), len(p.readPlans.validateFields), retErr)
	}()

	var obj T
	if err := p.codec.Unmarshal(data, &obj); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	if d, ok := any(&obj).(Decodable); ok {
		if err := d.Decode(p.b64); err != nil {
			retErr = newTransformError(ErrDecode, "decode", p.typeName, err)
			return nil, retErr
		}
	} else if err := p.applyDecode(&obj); err != nil {
		retErr = err
		return nil, retErr
	}

	if v, ok := any(&obj).(Validatable); ok {
		if err := v.ValidateText(p.unicode); err != nil {
			retErr = newTransformError(ErrValidate, "validate", p.typeName, err)
			return nil, retErr
		}
	} else if err := p.applyValidate(&obj); err != nil {
		retErr = err
		return nil, retErr
	}

	return &obj, nil
}

func (p *Processor[T]) marshal(v any) ([]byte, error) {
	data, err := p.codec.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// applyDigest replaces each write.digest field with its digest text.
func (p *Processor[T]) applyDigest(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.writePlans.digestFields {
		// Hashers can be removed after validation has run.
		hasher, ok := p.hashers[HashAlgo(plan.tagVal)]
		if !ok || hasher == nil {
			return newTransformError(ErrDigest, "digest", plan.name,
				newConfigError(ErrMissingHasher, plan.tagVal, plan.name))
		}

		err := p.transformStrings(rv, plan, func(in []byte) ([]byte, error) {
			out, err := hasher.Hash(in)
			return []byte(out), err
		})
		if err != nil {
			return newTransformError(ErrDigest, "digest", plan.name, err)
		}
	}

	return nil
}

// applyEncode replaces each write.encode field with its Base64 text.
func (p *Processor[T]) applyEncode(obj *T) {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.writePlans.encodeFields {
		// Encoding is total, the callback never fails.
		_ = p.transformStrings(rv, plan, func(in []byte) ([]byte, error) {
			return []byte(p.b64.Encode(in)), nil
		})
	}
}

// applyDecode replaces each read.decode field's Base64 text with its content.
func (p *Processor[T]) applyDecode(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.readPlans.decodeFields {
		err := p.transformStrings(rv, plan, func(in []byte) ([]byte, error) {
			return p.b64.Decode(string(in))
		})
		if err != nil {
			return newTransformError(ErrDecode, "decode", plan.name, err)
		}
	}

	return nil
}

// applyValidate checks each read.validate field without modifying it.
func (p *Processor[T]) applyValidate(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.readPlans.validateFields {
		err := p.transformStrings(rv, plan, func(in []byte) ([]byte, error) {
			if _, err := p.unicode.ToCodePoints(in); err != nil {
				return nil, err
			}
			return in, nil
		})
		if err != nil {
			return newTransformError(ErrValidate, "validate", plan.name, err)
		}
	}

	return nil
}

// transformStrings applies fn to every string value the plan addresses:
// the scalar string or []byte, each []string element, or each map value.
func (p *Processor[T]) transformStrings(rv reflect.Value, plan processorFieldPlan, fn func([]byte) ([]byte, error)) error {
	field, ok := p.getField(rv, plan)
	if !ok {
		return nil
	}

	if plan.isSlice {
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if !elem.CanSet() {
				continue
			}
			out, err := fn([]byte(elem.String()))
			if err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
			elem.SetString(string(out))
		}
		return nil
	}

	if plan.isMap {
		iter := field.MapRange()
		for iter.Next() {
			k, v := iter.Key(), iter.Value()
			out, err := fn([]byte(v.String()))
			if err != nil {
				return fmt.Errorf("[%v]: %w", k.Interface(), err)
			}
			field.SetMapIndex(k, reflect.ValueOf(string(out)).Convert(field.Type().Elem()))
		}
		return nil
	}

	if !field.CanSet() {
		return nil
	}

	if plan.isBytes {
		out, err := fn(field.Bytes())
		if err != nil {
			return err
		}
		field.SetBytes(out)
		return nil
	}

	out, err := fn([]byte(field.String()))
	if err != nil {
		return err
	}
	field.SetString(string(out))
	return nil
}

// getField navigates a field path, dereferencing pointers as needed.
func (p *Processor[T]) getField(rv reflect.Value, plan processorFieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
