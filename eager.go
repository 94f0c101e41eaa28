package framenest

// InstantiateAll walks this injector's provider table in order and
// instantiates every key through the normal cached path. Already-instantiated
// keys are untouched. The first failure stops the walk and is returned; the
// failed key's slot reverts to uninstantiated as usual, so a later request
// may retry.
func (inj *Injector) InstantiateAll() error {
	for _, rp := range inj.providers {
		if _, err := inj.getObjByKeyID(rp.Key, rp); err != nil {
			return err
		}
	}
	return nil
}
