package userstore

// Quantity transitions run server-side so the read-modify-write is one atomic
// step: two clients incrementing the same line never lose an update.

// KEYS[1] = quantity hash, ARGV[1] = product id, ARGV[2] = delta.
// An absent counter defaults to 1 before the delta is applied.
const increaseQuantityScript = `
local qty = redis.call('HGET', KEYS[1], ARGV[1])
if not qty then
  qty = 1
else
  qty = tonumber(qty)
end
local new = qty + tonumber(ARGV[2])
redis.call('HSET', KEYS[1], ARGV[1], new)
return new
`

// KEYS[1] = quantity hash, KEYS[2] = cart snapshot hash, ARGV[1] = product id,
// ARGV[2] = delta. A result of zero or less deletes the line entirely; a
// non-positive quantity is never persisted.
const decreaseQuantityScript = `
local qty = redis.call('HGET', KEYS[1], ARGV[1])
if not qty then
  qty = 1
else
  qty = tonumber(qty)
end
local new = qty - tonumber(ARGV[2])
if new > 0 then
  redis.call('HSET', KEYS[1], ARGV[1], new)
  return new
end
redis.call('HDEL', KEYS[1], ARGV[1])
redis.call('HDEL', KEYS[2], ARGV[1])
return 0
`
